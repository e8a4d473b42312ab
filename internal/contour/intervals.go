package contour

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/terrafold/contour-utils/internal/grid"
)

// Interval is the filled region between two adjacent contour levels. The
// outermost intervals are unbounded on one side (Min or Max is infinite).
// Exterior rings keep their enclosed region on the right of travel (negative
// shoelace sum in intrinsic coordinates); holes are wound the other way.
type Interval struct {
	Min, Max float64
	Polygons orb.MultiPolygon
}

// Contains reports whether a value falls inside the interval's half-open
// range [Min, Max).
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v < iv.Max
}

// BuildIntervals assembles closed polygons for every contour interval from
// the traced lines. For k levels present in the output there are exactly k+1
// intervals. The lines must come from Trace on the same grid with the same
// options; they are never modified.
func BuildIntervals(g *grid.Grid, lines []Line, levels []float64, opts Options) ([]Interval, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := validateLevels(levels); err != nil {
		return nil, err
	}

	adjusted := opts.EdgePolicy.Apply(g, opts.Interpretation)
	min, max, _ := adjusted.Range()

	// match the traced lines against the requested levels, dropping levels
	// whose trace is empty (possible only on degenerate grids)
	idx := 0
	var present []Line
	for _, level := range levels {
		if level < min || level > max {
			continue
		}

		if idx >= len(lines) || lines[idx].Level != level {
			return nil, &TopologyError{Reason: fmt.Sprintf("no contour line for level %v", level)}
		}

		if len(lines[idx].Parts) > 0 {
			present = append(present, lines[idx])
		}
		idx++
	}
	if idx != len(lines) {
		return nil, &TopologyError{Reason: "contour lines do not match the level list"}
	}

	w := float64(adjusted.Cols - 1)
	h := float64(adjusted.Rows - 1)
	periodic := opts.EdgePolicy.WrapColumns

	sample, sampleOk := boundarySample(adjusted)

	intervals := make([]Interval, len(present)+1)
	for i := range intervals {
		lo := math.Inf(-1)
		if i > 0 {
			lo = present[i-1].Level
		}
		hi := math.Inf(1)
		if i < len(present) {
			hi = present[i].Level
		}

		iv := Interval{Min: lo, Max: hi}

		var err error
		if periodic {
			iv.Polygons, err = buildPeriodicInterval(adjusted, present, i, iv, w, h)
		} else {
			iv.Polygons, err = buildPlanarInterval(present, i, iv, w, h, sample, sampleOk)
		}
		if err != nil {
			return nil, err
		}

		intervals[i] = iv
	}

	return intervals, nil
}

// intervalCurves collects the bounding curves of interval i: parts of the
// lower level as traced, parts of the upper level reversed, so that the
// interval's region lies on the right of every curve. All parts are copied.
func intervalCurves(present []Line, i int) (rings []orb.Ring, open []orb.LineString) {
	if i > 0 {
		for _, part := range present[i-1].Parts {
			if isClosed(part) {
				rings = append(rings, orb.Ring(copyLine(part)))
			} else {
				open = append(open, copyLine(part))
			}
		}
	}

	if i < len(present) {
		for _, part := range present[i].Parts {
			rev := reversedLine(part)
			if isClosed(rev) {
				rings = append(rings, orb.Ring(rev))
			} else {
				open = append(open, rev)
			}
		}
	}

	return rings, open
}

func buildPlanarInterval(present []Line, i int, iv Interval, w, h float64, sample float64, sampleOk bool) (orb.MultiPolygon, error) {
	rings, open := intervalCurves(present, i)

	closed, err := closeOpenCurves(open, w, h)
	if err != nil {
		return nil, err
	}
	rings = append(rings, closed...)

	// a region touching the raster edge with no curve crossing it is
	// bounded by the full perimeter
	if len(open) == 0 && sampleOk && iv.Contains(sample) {
		rings = append(rings, perimeterRing(w, h))
	}

	return assemblePolygons(rings)
}

// buildPeriodicInterval handles rasters spanning a full period in the column
// direction. Open ends on the seam are stitched together; the remaining open
// ends must sit on the top or bottom row and are closed along those cyclic
// rows. Planar hole nesting is undefined on the cylinder in intrinsic
// coordinates, so every ring becomes its own polygon.
func buildPeriodicInterval(g *grid.Grid, present []Line, i int, iv Interval, w, h float64) (orb.MultiPolygon, error) {
	rings, open := intervalCurves(present, i)

	open, seamRings, err := stitchSeam(open, w, h)
	if err != nil {
		return nil, err
	}
	rings = append(rings, seamRings...)

	topTouched := false
	bottomTouched := false
	for _, c := range open {
		for _, p := range []orb.Point{c[0], c[len(c)-1]} {
			if p.Y() == 0 {
				topTouched = true
			}
			if p.Y() == h {
				bottomTouched = true
			}
		}
	}

	rowRings, err := closeCyclicRows(open, w, h)
	if err != nil {
		return nil, err
	}
	rings = append(rings, rowRings...)

	// a polar cap entirely inside the interval is bounded by the full row
	if !topTouched && iv.Contains(g.Z(0, 0)) {
		rings = append(rings, rowRing(w, 0, true))
	}
	if !bottomTouched && iv.Contains(g.Z(0, g.Rows-1)) {
		rings = append(rings, rowRing(w, h, false))
	}

	polys := make(orb.MultiPolygon, len(rings))
	for j, r := range rings {
		polys[j] = orb.Polygon{r}
	}

	return polys, nil
}

// assemblePolygons splits rings into exteriors and holes by winding and
// attaches every hole to the smallest exterior that contains it.
func assemblePolygons(rings []orb.Ring) (orb.MultiPolygon, error) {
	var exteriors, holes []orb.Ring
	for _, r := range rings {
		if signedArea(r) > 0 {
			holes = append(holes, r)
		} else {
			exteriors = append(exteriors, r)
		}
	}

	if len(exteriors) == 0 {
		if len(holes) > 0 {
			return nil, &TopologyError{Reason: "hole without an enclosing ring"}
		}
		return nil, nil
	}

	sort.Slice(exteriors, func(a, b int) bool {
		return math.Abs(signedArea(exteriors[a])) < math.Abs(signedArea(exteriors[b]))
	})

	polys := make(orb.MultiPolygon, len(exteriors))
	for i, ext := range exteriors {
		polys[i] = orb.Polygon{ext}
	}

	for _, hole := range holes {
		attached := false
		for i := range polys {
			if planar.RingContains(polys[i][0], hole[0]) {
				polys[i] = append(polys[i], hole)
				attached = true
				break
			}
		}

		if !attached {
			return nil, &TopologyError{Reason: "hole without an enclosing ring"}
		}
	}

	return polys, nil
}

// signedArea is the shoelace sum over a closed ring in intrinsic
// coordinates. Rings that keep their enclosed region on the right of travel
// come out negative.
func signedArea(r orb.Ring) float64 {
	if len(r) < 3 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(r)-1; i++ {
		total += r[i].X()*r[i+1].Y() - r[i+1].X()*r[i].Y()
	}

	return total / 2
}

// boundarySample returns the first finite sample on the raster perimeter.
func boundarySample(g *grid.Grid) (float64, bool) {
	check := func(col, row int) (float64, bool) {
		v := g.Z(col, row)
		return v, finite(v)
	}

	for col := 0; col < g.Cols; col++ {
		if v, ok := check(col, 0); ok {
			return v, true
		}
		if v, ok := check(col, g.Rows-1); ok {
			return v, true
		}
	}
	for row := 0; row < g.Rows; row++ {
		if v, ok := check(0, row); ok {
			return v, true
		}
		if v, ok := check(g.Cols-1, row); ok {
			return v, true
		}
	}

	return 0, false
}

func copyLine(l orb.LineString) orb.LineString {
	out := make(orb.LineString, len(l))
	copy(out, l)
	return out
}

func reversedLine(l orb.LineString) orb.LineString {
	out := make(orb.LineString, len(l))
	for i := range l {
		out[i] = l[len(l)-1-i]
	}
	return out
}
