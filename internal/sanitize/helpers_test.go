package sanitize

import (
	"math"
	"math/rand"

	"github.com/planbiir/gpxsanitize/internal/geo"
)

// degrees of arc per meter on the model sphere
const degPerMeter = 180 / (math.Pi * geo.EarthRadiusMeters)

func north(p geo.Point, meters float64) geo.Point {
	return geo.Point{Lat: p.Lat + meters*degPerMeter, Lon: p.Lon}
}

func east(p geo.Point, meters float64) geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lon + meters*degPerMeter/math.Cos(p.Lat*math.Pi/180)}
}

// line returns points walking north from start with the given gaps.
func line(start geo.Point, gaps ...float64) []geo.Point {
	pts := []geo.Point{start}
	for _, g := range gaps {
		pts = append(pts, north(pts[len(pts)-1], g))
	}
	return pts
}

// scatter returns n reproducible points within roughly 200m of start.
func scatter(seed int64, n int) []geo.Point {
	rng := rand.New(rand.NewSource(seed))
	start := geo.Point{Lat: 46.0, Lon: 7.0}
	pts := make([]geo.Point, n)
	for i := range pts {
		pts[i] = east(north(start, rng.Float64()*200), rng.Float64()*200)
	}
	return pts
}
