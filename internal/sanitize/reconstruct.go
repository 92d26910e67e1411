package sanitize

import "math"

// Tour is a reconstructed visiting order over the points of one segment.
type Tour struct {
	// Order lists point indices, starting with the seed. No index repeats.
	Order []int

	// Lost lists, ascending, the indices the walk never reached.
	Lost []int
}

// LostCount returns N - len(Order).
func (t Tour) LostCount() int {
	return len(t.Lost)
}

// usable reports whether d may be chosen as a next hop. Zero, negative
// (Sentinel), NaN and infinite entries never are.
func usable(d float64) bool {
	return d > 0 && !math.IsInf(d, 1)
}

// Reconstruct threads a greedy nearest-neighbour path through the matrix,
// starting from point 0. At each step it moves to the closest unvisited point
// with a usable distance from the current one, lowest index first on ties.
// When no such point exists the walk stops and every unvisited point is
// reported lost; there is no backtracking and no retry from another seed.
//
// Each step depends on the points visited by the previous ones, so a single
// reconstruction is strictly sequential. The matrix is left untouched.
func Reconstruct(m *Matrix) Tour {
	n := m.Size()
	if n == 0 {
		return Tour{}
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)

	cur := 0
	visited[cur] = true
	order = append(order, cur)

	for len(order) < n {
		next := nearestUnvisited(m, cur, visited)
		if next < 0 {
			break // dead end
		}
		visited[next] = true
		order = append(order, next)
		cur = next
	}

	var lost []int
	for i, seen := range visited {
		if !seen {
			lost = append(lost, i)
		}
	}

	return Tour{Order: order, Lost: lost}
}

// nearestUnvisited scans row cur in ascending column order and returns the
// column holding the smallest usable distance, or -1.
func nearestUnvisited(m *Matrix, cur int, visited []bool) int {
	best := -1
	bestDist := math.Inf(1)

	for j := 0; j < m.Size(); j++ {
		if visited[j] {
			continue
		}
		d := m.At(cur, j)
		if !usable(d) {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = j
		}
	}

	return best
}

// Reorder returns the points of the segment in tour order.
func Reorder[T any](points []T, t Tour) []T {
	out := make([]T, len(t.Order))
	for i, idx := range t.Order {
		out[i] = points[idx]
	}
	return out
}
