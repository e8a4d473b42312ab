package grid

import "math"

// EdgePolicy describes boundary corrections applied before tracing so that
// contours continue across a periodic seam or a pole instead of terminating
// at an artificial raster edge.
type EdgePolicy struct {
	// AverageFirstRow replaces the first row with its finite mean. Use it
	// when the first row collapses to a single physical point (a pole).
	AverageFirstRow bool
	// AverageLastRow is the same correction for the last row.
	AverageLastRow bool
	// AverageColumns replaces the first and last column with their pairwise
	// mean. Use it when both columns sample the same meridian of a raster
	// spanning a full period.
	AverageColumns bool
	// WrapColumns marks the raster as spanning a full period in the column
	// direction. Interval construction glues open contour ends across the
	// seam instead of closing them along the left/right edges.
	WrapColumns bool
}

// Apply returns a grid with the policy's corrections applied. The input grid
// is never modified. For cell rasters spanning a full period the seam column
// is not present in the data, so a duplicate of the first column is appended
// to let tracing continue across the seam.
func (p EdgePolicy) Apply(g *Grid, interp Interpretation) *Grid {
	if !p.AverageFirstRow && !p.AverageLastRow && !p.AverageColumns && !(p.WrapColumns && interp == Cells) {
		return g
	}

	out := g.clone()

	if p.WrapColumns && interp == Cells {
		for row := 0; row < out.Rows; row++ {
			out.Data[row] = append(out.Data[row], out.Data[row][0])
		}
		out.Cols++
	}

	if p.AverageFirstRow {
		fillRow(out.Data[0])
	}
	if p.AverageLastRow {
		fillRow(out.Data[out.Rows-1])
	}

	if p.AverageColumns {
		last := out.Cols - 1
		for row := 0; row < out.Rows; row++ {
			a := out.Data[row][0]
			b := out.Data[row][last]

			var v float64
			switch {
			case isFinite(a) && isFinite(b):
				v = (a + b) / 2
			case isFinite(a):
				v = a
			case isFinite(b):
				v = b
			default:
				v = math.NaN()
			}

			out.Data[row][0] = v
			out.Data[row][last] = v
		}
	}

	return out
}

// fillRow replaces every entry of the row with the mean of its finite
// entries. A row without finite entries is left untouched.
func fillRow(row []float64) {
	sum := 0.0
	n := 0
	for _, v := range row {
		if isFinite(v) {
			sum += v
			n++
		}
	}

	if n == 0 {
		return
	}

	mean := sum / float64(n)
	for i := range row {
		row[i] = mean
	}
}
