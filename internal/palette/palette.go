// Package palette assigns contour levels to slots of a fixed-size color
// palette. It only computes indices; colors belong to the rendering layer.
package palette

import "math"

// LevelIndex assigns each value a palette slot in [1, size]. The output is
// non-decreasing for sorted input and strictly increasing when the palette
// is larger than the value list. Callers that need monotonic output must
// pass values in increasing order.
//
// With fewer slots than values the surplus collapses onto the first and last
// slot: a leading block maps to 1 and a trailing block to size, the leading
// block taking the extra element when the shortage is odd, while the middle
// values map straight through.
func LevelIndex(values []float64, size int) []int {
	m := len(values)

	switch {
	case size <= 0 || m == 0:
		return []int{}
	case size == 1:
		index := make([]int, m)
		for i := range index {
			index[i] = 1
		}
		return index
	case size < m:
		shortage := m - size
		h := shortage / 2
		if shortage%2 == 1 {
			h = (shortage + 1) / 2
		}

		index := make([]int, m)
		for i := range index {
			switch {
			case i < h:
				index[i] = 1
			case i < h+size:
				index[i] = i - h + 1
			default:
				index[i] = size
			}
		}
		return index
	case size == m:
		index := make([]int, m)
		for i := range index {
			index[i] = i + 1
		}
		return index
	}

	return quasilinear(values, 1, size)
}

// quasilinear places the central value at the slot proportional to its
// normalized position between the endpoints, then recurses on both halves
// with tightened bounds. The clamps keep enough slots on each side, which
// makes the result strictly increasing and collision free; recursion depth
// is logarithmic in the palette size.
func quasilinear(values []float64, n1, n2 int) []int {
	m := len(values)

	switch m {
	case 0:
		return nil
	case 1:
		return []int{(n1 + n2) / 2}
	case 2:
		return []int{n1, n2}
	}

	mid := m / 2

	t := 0.5
	if values[m-1] != values[0] {
		t = (values[mid] - values[0]) / (values[m-1] - values[0])
	}

	pos := n1 + int(math.Round(t*float64(n2-n1)))
	if pos < n1+mid {
		pos = n1 + mid
	}
	if pos > n2-(m-1-mid) {
		pos = n2 - (m - 1 - mid)
	}

	index := quasilinear(values[:mid], n1, pos-1)
	index = append(index, pos)

	return append(index, quasilinear(values[mid+1:], pos+1, n2)...)
}

// SelectColors maps levels to palette slots by plain linear interpolation
// between the first and last level, without collision avoidance. Infinite
// levels (the unbounded outer intervals) are clamped to their nearest finite
// sibling first; a single level gets the middle slot.
func SelectColors(levels []float64, size int) []int {
	m := len(levels)
	if size <= 0 || m == 0 {
		return []int{}
	}

	middle := (size + 1) / 2
	if m == 1 {
		return []int{middle}
	}

	clamped := make([]float64, m)
	copy(clamped, levels)
	if math.IsInf(clamped[0], -1) {
		clamped[0] = clamped[1]
	}
	if math.IsInf(clamped[m-1], 1) {
		clamped[m-1] = clamped[m-2]
	}

	first := clamped[0]
	last := clamped[m-1]

	index := make([]int, m)
	for i, v := range clamped {
		t := 0.5
		if last != first {
			t = (v - first) / (last - first)
		}

		slot := 1 + int(math.Round(t*float64(size-1)))
		if slot < 1 {
			slot = 1
		}
		if slot > size {
			slot = size
		}
		index[i] = slot
	}

	return index
}
