package geo

import (
	"fmt"
	"math"
)

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle (haversine) distance between two
// coordinates in meters.
func DistanceMeters(a, b Coordinates) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// WithinRadius reports whether point lies within radiusMeters of center.
// The boundary is inclusive: a point at exactly radiusMeters is inside.
func WithinRadius(point, center Coordinates, radiusMeters float64) bool {
	return DistanceMeters(point, center) <= radiusMeters
}

// FormatCoordinates renders a "lat, lon" display string with five decimal
// places, used as the fallback when reverse geocoding is unavailable.
func FormatCoordinates(c Coordinates) string {
	return fmt.Sprintf("%.5f, %.5f", c.Latitude, c.Longitude)
}
