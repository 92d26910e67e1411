package sanitize

import "github.com/planbiir/gpxsanitize/internal/geo"

// Split cuts an ordered point sequence wherever two consecutive points are
// more than threshold meters apart. Points are never dropped, reordered or
// duplicated: concatenating the result gives back the input.
func Split(points []geo.Point, threshold float64) [][]geo.Point {
	if len(points) == 0 {
		return nil
	}

	var runs [][]geo.Point
	current := []geo.Point{points[0]}

	for i := 1; i < len(points); i++ {
		if geo.Distance(points[i-1], points[i]) > threshold {
			runs = append(runs, current)
			current = nil
		}
		current = append(current, points[i])
	}

	return append(runs, current)
}
