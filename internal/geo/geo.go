// Package geo holds the pure geometry used for safe-area containment.
package geo

import "math"

// earthRadiusMeters is the mean spherical Earth radius.
const earthRadiusMeters = 6371000.0

// Area is a circular region: a center point and a radius in meters.
type Area struct {
	Lat    float64
	Lng    float64
	Radius float64
}

// Distance returns the great-circle distance in meters between two
// points given in decimal degrees, using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// ContainedInAny reports whether the point lies inside at least one of the
// given areas. The boundary counts as inside. An empty area set means there
// is nothing to be inside of, so the result is false.
func ContainedInAny(lat, lng float64, areas []Area) bool {
	for _, area := range areas {
		if Distance(lat, lng, area.Lat, area.Lng) <= area.Radius {
			return true
		}
	}
	return false
}
