package spatial

import (
	"github.com/golang/geo/s2"
)

// Earth radii used for great-circle distance.
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// KilometersBetween calculates the great-circle distance between two points
// in kilometers.
func KilometersBetween(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineDistance(lat1, lon1, lat2, lon2) / 1000
}
