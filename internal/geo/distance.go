// Package geo holds the spherical distance model shared by the sanitizer and
// the GPX codec.
package geo

import "math"

// EarthRadiusMeters is the fixed mean spherical radius used for every
// distance. Output files depend on it, so it is not the WGS84 value.
const EarthRadiusMeters = 6378140.0

// Point is a position in degrees.
type Point struct {
	Lat float64
	Lon float64
}

func toRadians(d float64) float64 {
	return d * math.Pi / 180
}

// Distance returns the great-circle distance in meters between p1 and p2
// (haversine on a sphere of EarthRadiusMeters).
func Distance(p1, p2 Point) float64 {
	lat1Rad := toRadians(p1.Lat)
	lon1Rad := toRadians(p1.Lon)
	lat2Rad := toRadians(p2.Lat)
	lon2Rad := toRadians(p2.Lon)

	deltaLat := lat1Rad - lat2Rad
	deltaLon := lon1Rad - lon2Rad

	sinLat := math.Sin(deltaLat / 2)
	sinLon := math.Sin(deltaLon / 2)
	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	if a > 1 {
		a = 1 // rounding near antipodes
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// PathLength sums the distance between consecutive points.
func PathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
