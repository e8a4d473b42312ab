package contour

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/paulmach/orb"
	"golang.org/x/sync/semaphore"

	"github.com/terrafold/contour-utils/internal/grid"
)

// Options configure tracing and interval construction.
type Options struct {
	Interpretation grid.Interpretation
	EdgePolicy     grid.EdgePolicy
}

// Line is the contour of a single level. Parts holds one or more polylines
// in intrinsic (col, row) coordinates; a part is closed iff its first and
// last vertex are equal. Vertices are ordered so that higher samples lie to
// the right of the direction of travel.
type Line struct {
	Level float64
	Parts []orb.LineString
}

// Trace extracts contour lines for every level that falls within the grid's
// finite value range. Levels outside the range are skipped; the output is
// ordered by level. The input grid is never modified.
func Trace(g *grid.Grid, levels []float64, opts Options) ([]Line, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := validateLevels(levels); err != nil {
		return nil, err
	}

	adjusted := opts.EdgePolicy.Apply(g, opts.Interpretation)

	min, max, _ := adjusted.Range()

	present := make([]float64, 0, len(levels))
	for _, level := range levels {
		if level >= min && level <= max {
			present = append(present, level)
		}
	}

	results := make([]Line, len(present))

	waitGrp := sync.WaitGroup{}
	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))

	for i, level := range present {
		waitGrp.Add(1)
		go func(i int, level float64) {
			defer waitGrp.Done()

			sem.Acquire(context.Background(), 1)
			results[i] = Line{Level: level, Parts: traceLevel(adjusted, level, min, max)}
			sem.Release(1)
		}(i, level)
	}

	waitGrp.Wait()

	return results, nil
}

// TraceLevel extracts the contour of a single level. It is the per-level
// granularity callers should wrap when they need external cancellation.
func TraceLevel(g *grid.Grid, level float64, opts Options) (Line, error) {
	lines, err := Trace(g, []float64{level}, opts)
	if err != nil {
		return Line{}, err
	}
	if len(lines) == 0 {
		return Line{Level: level}, nil
	}

	return lines[0], nil
}

func validateLevels(levels []float64) error {
	if len(levels) == 0 {
		return &InvalidLevelListError{Reason: "no levels given"}
	}

	for i, level := range levels {
		if math.IsNaN(level) || math.IsInf(level, 0) {
			return &InvalidLevelListError{Reason: "levels must be finite"}
		}
		if i > 0 && levels[i-1] >= level {
			return &InvalidLevelListError{Reason: "levels must be strictly increasing"}
		}
	}

	return nil
}

// traceLevel runs marching squares over all cells and stitches the resulting
// segments into polylines. A level equal to the grid min or max is traced one
// ulp below it, which puts samples equal to the level on the high side: the
// min traces empty while a degenerate loop around the max survives. Interval
// membership is half-open in the same direction, so both stay consistent
// with the filled intervals.
func traceLevel(g *grid.Grid, level, min, max float64) []orb.LineString {
	if level == min || level == max {
		level = math.Nextafter(level, math.Inf(-1))
	}

	var lines []orb.LineString

	for row := 0; row < g.Rows-1; row++ {
		for col := 0; col < g.Cols-1; col++ {
			for _, seg := range cellSegments(g, col, row, level) {
				lines = joinSegment(lines, seg)
			}
		}
	}

	return lines
}

// cellSegments returns the oriented contour segments of one cell. Corners
// strictly greater than the level count as high; the segments keep the high
// side on the right of the direction of travel. Cells with a non-finite
// corner are skipped entirely, which may fragment a loop into open parts.
func cellSegments(g *grid.Grid, col, row int, level float64) []orb.LineString {
	tl := g.Z(col, row)
	tr := g.Z(col+1, row)
	br := g.Z(col+1, row+1)
	bl := g.Z(col, row+1)

	if !finite(tl) || !finite(tr) || !finite(br) || !finite(bl) {
		return nil
	}

	index := 0
	if tl > level {
		index |= 8
	}
	if tr > level {
		index |= 4
	}
	if br > level {
		index |= 2
	}
	if bl > level {
		index |= 1
	}

	if index == 0 || index == 15 {
		return nil
	}

	x0 := float64(col)
	x1 := float64(col + 1)
	y0 := float64(row)
	y1 := float64(row + 1)

	// crossing points are computed from the shared edge values in a fixed
	// argument order, so adjacent cells produce bitwise identical vertices
	top := func() orb.Point {
		return orb.Point{interpolate(x0, tl, x1, tr, level), y0}
	}
	bottom := func() orb.Point {
		return orb.Point{interpolate(x0, bl, x1, br, level), y1}
	}
	left := func() orb.Point {
		return orb.Point{x0, interpolate(y0, tl, y1, bl, level)}
	}
	right := func() orb.Point {
		return orb.Point{x1, interpolate(y0, tr, y1, br, level)}
	}

	seg := func(a, b orb.Point) orb.LineString {
		return orb.LineString{a, b}
	}

	switch index {
	case 1:
		return []orb.LineString{seg(bottom(), left())}
	case 14:
		return []orb.LineString{seg(left(), bottom())}
	case 2:
		return []orb.LineString{seg(right(), bottom())}
	case 13:
		return []orb.LineString{seg(bottom(), right())}
	case 3:
		return []orb.LineString{seg(right(), left())}
	case 12:
		return []orb.LineString{seg(left(), right())}
	case 4:
		return []orb.LineString{seg(top(), right())}
	case 11:
		return []orb.LineString{seg(right(), top())}
	case 8:
		return []orb.LineString{seg(left(), top())}
	case 7:
		return []orb.LineString{seg(top(), left())}
	case 6:
		return []orb.LineString{seg(top(), bottom())}
	case 9:
		return []orb.LineString{seg(bottom(), top())}
	case 5:
		// saddle: the mean of the corners decides which high pair connects
		if (tl+tr+br+bl)/4 > level {
			return []orb.LineString{seg(top(), left()), seg(bottom(), right())}
		}
		return []orb.LineString{seg(bottom(), left()), seg(top(), right())}
	case 10:
		if (tl+tr+br+bl)/4 > level {
			return []orb.LineString{seg(left(), bottom()), seg(right(), top())}
		}
		return []orb.LineString{seg(left(), top()), seg(right(), bottom())}
	}

	return nil
}

func interpolate(c0, h0, c1, h1, level float64) float64 {
	return (c0*(h1-level) + c1*(level-h0)) / (h1 - h0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
