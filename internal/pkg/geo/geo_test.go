package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Office used across geofence tests: central Jakarta, radius scenarios per
// the attendance rules.
var office = Coordinates{Latitude: -6.2000, Longitude: 106.8000}

// One degree of latitude is ~111195 m on a sphere of radius 6371000 m, so
// these offsets land ~150 m and ~50 m north of the office.
var (
	point150m = Coordinates{Latitude: -6.1986510, Longitude: 106.8000}
	point50m  = Coordinates{Latitude: -6.1995503, Longitude: 106.8000}
)

func TestDistanceMeters_Zero(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(office, office))
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := Coordinates{Latitude: -6.2, Longitude: 106.8}
	b := Coordinates{Latitude: -7.8, Longitude: 110.4}
	assert.Equal(t, DistanceMeters(a, b), DistanceMeters(b, a))
}

func TestDistanceMeters_KnownOffsets(t *testing.T) {
	assert.InDelta(t, 150, DistanceMeters(point150m, office), 0.5)
	assert.InDelta(t, 50, DistanceMeters(point50m, office), 0.5)
}

func TestWithinRadius(t *testing.T) {
	assert.False(t, WithinRadius(point150m, office, 100))
	assert.True(t, WithinRadius(point50m, office, 100))
}

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	d := DistanceMeters(point150m, office)
	assert.True(t, WithinRadius(point150m, office, d))
	assert.False(t, WithinRadius(point150m, office, d-0.001))
}

func TestFormatCoordinates(t *testing.T) {
	got := FormatCoordinates(Coordinates{Latitude: -6.2, Longitude: 106.8})
	assert.Equal(t, "-6.20000, 106.80000", got)
}
