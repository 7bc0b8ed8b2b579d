package config

import "github.com/hadirku/hadirku-backend-go/internal/pkg/geo"

// DefaultRadiusMeters applies when no config has ever been saved.
const DefaultRadiusMeters = 500

// SystemConfig is the singleton office configuration. OfficeLocation is nil
// until an admin sets it, in which case check-in skips the geofence check.
type SystemConfig struct {
	OfficeLocation *geo.Coordinates
	OfficeName     *string
	RadiusMeters   int
}

// Default returns the lazily-created config used when the collection is
// empty.
func Default() SystemConfig {
	return SystemConfig{RadiusMeters: DefaultRadiusMeters}
}
