package sanitize

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MeanNearestNeighbor averages, over every point, the distance to its closest
// other point. It ignores visitation and is only used for reporting.
func MeanNearestNeighbor(m *Matrix) float64 {
	n := m.Size()
	if n < 2 {
		return 0
	}

	nearest := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		closest := math.Inf(1)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := m.At(i, j)
			if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				continue
			}
			if d < closest {
				closest = d
			}
		}
		if !math.IsInf(closest, 1) {
			nearest = append(nearest, closest)
		}
	}

	if len(nearest) == 0 {
		return 0
	}
	return stat.Mean(nearest, nil)
}
