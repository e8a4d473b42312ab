package contour

import (
	"math"

	"github.com/paulmach/orb"
)

// closeOpenCurves closes open bounding curves of one interval along the
// raster perimeter. Every curve ends on the perimeter; the walk continues
// from there, with the region kept on the right, to the start of the next
// curve of the same interval, inserting any corner passed on the way.
func closeOpenCurves(open []orb.LineString, w, h float64) ([]orb.Ring, error) {
	if len(open) == 0 {
		return nil, nil
	}

	perim := 2 * (w + h)

	starts := make([]float64, len(open))
	ends := make([]float64, len(open))
	for i, c := range open {
		var ok bool
		if starts[i], ok = perimParam(c[0], w, h); !ok {
			return nil, &TopologyError{Reason: "contour starts inside the grid (missing data next to a filled interval)"}
		}
		if ends[i], ok = perimParam(c[len(c)-1], w, h); !ok {
			return nil, &TopologyError{Reason: "contour ends inside the grid (missing data next to a filled interval)"}
		}
	}

	used := make([]bool, len(open))
	var rings []orb.Ring

	for i := range open {
		if used[i] {
			continue
		}

		ring := orb.Ring{}
		cur := i
		for {
			used[cur] = true
			ring = appendPoints(ring, open[cur])

			// nearest start along the walk direction; the initial curve's
			// start closes the ring
			next := -1
			dist := math.Inf(1)
			for j := range open {
				if used[j] && j != i {
					continue
				}

				d := cyclicDist(ends[cur], starts[j], perim)
				if d < dist {
					next = j
					dist = d
				}
			}
			if next == -1 {
				return nil, &TopologyError{Reason: "interval boundary does not close"}
			}

			for _, corner := range cornersBetween(ends[cur], dist, w, h) {
				ring = appendPoints(ring, orb.LineString{corner})
			}

			if next == i {
				break
			}
			cur = next
		}

		ring = append(ring, ring[0])
		rings = append(rings, ring)
	}

	return rings, nil
}

// perimParam maps a point on the raster perimeter to its position along the
// walk that keeps the grid interior on the right: down the left edge, right
// along the bottom, up the right edge and left along the top.
func perimParam(p orb.Point, w, h float64) (float64, bool) {
	x, y := p.X(), p.Y()

	switch {
	case x == 0:
		return y, true
	case y == h:
		return h + x, true
	case x == w:
		return h + w + (h - y), true
	case y == 0:
		return 2*h + w + (w - x), true
	}

	return 0, false
}

// cornersBetween returns the perimeter corners passed when walking dist
// units forward from param t, in walk order.
func cornersBetween(t, dist, w, h float64) []orb.Point {
	perim := 2 * (w + h)

	corners := []struct {
		param float64
		point orb.Point
	}{
		{0, orb.Point{0, 0}},
		{h, orb.Point{0, h}},
		{h + w, orb.Point{w, h}},
		{2*h + w, orb.Point{w, 0}},
	}

	type hit struct {
		d     float64
		point orb.Point
	}
	var hits []hit
	for _, c := range corners {
		d := cyclicDist(t, c.param, perim)
		if d > 0 && d < dist {
			hits = append(hits, hit{d, c.point})
		}
	}

	// walk order
	for a := 0; a < len(hits); a++ {
		for b := a + 1; b < len(hits); b++ {
			if hits[b].d < hits[a].d {
				hits[a], hits[b] = hits[b], hits[a]
			}
		}
	}

	points := make([]orb.Point, len(hits))
	for i, ht := range hits {
		points[i] = ht.point
	}

	return points
}

func cyclicDist(from, to, period float64) float64 {
	d := math.Mod(to-from, period)
	if d < 0 {
		d += period
	}
	return d
}

// perimeterRing is the full raster boundary, wound with the interior on the
// right.
func perimeterRing(w, h float64) orb.Ring {
	return orb.Ring{{0, 0}, {0, h}, {w, h}, {w, 0}, {0, 0}}
}

// seamSnapTol is the tolerance used to match open ends across the periodic
// seam: 100 ulps of a half period, scaled to intrinsic columns.
func seamSnapTol(w float64) float64 {
	eps180 := math.Nextafter(180, math.Inf(1)) - 180
	return 100 * eps180 * w / 360
}

// stitchSeam joins open curves across the periodic seam. A curve ending on
// one seam edge continues on the curve starting at the same row on the other
// edge; a curve meeting itself becomes a closed ring. Ends on the seam that
// find no partner are a topology error unless they sit on the top or bottom
// row, where the cyclic row walk picks them up.
func stitchSeam(open []orb.LineString, w, h float64) ([]orb.LineString, []orb.Ring, error) {
	tol := seamSnapTol(w)

	curves := make([]orb.LineString, len(open))
	copy(curves, open)

	var rings []orb.Ring

	for {
		merged := false

		for i := 0; i < len(curves) && !merged; i++ {
			end := curves[i][len(curves[i])-1]
			ex, ey := end.X(), end.Y()
			if ex != 0 && ex != w {
				continue
			}

			wantX := 0.0
			if ex == 0 {
				wantX = w
			}

			for j := 0; j < len(curves); j++ {
				start := curves[j][0]
				if start.X() != wantX || math.Abs(start.Y()-ey) > tol {
					continue
				}

				if i == j {
					// the curve wraps onto itself
					ring := orb.Ring(curves[i])
					ring = append(ring, ring[0])
					rings = append(rings, ring)
					curves = append(curves[:i], curves[i+1:]...)
				} else {
					// snap the partner's first row to the end row
					joined := curves[i]
					joined = append(joined, orb.Point{wantX, ey})
					joined = append(joined, curves[j][1:]...)
					curves[i] = joined
					curves = append(curves[:j], curves[j+1:]...)
				}

				merged = true
				break
			}
		}

		if !merged {
			break
		}
	}

	// whatever still touches the seam must be resolvable by the row walk
	for _, c := range curves {
		for _, p := range []orb.Point{c[0], c[len(c)-1]} {
			if (p.X() == 0 || p.X() == w) && p.Y() != 0 && p.Y() != h {
				return nil, nil, &TopologyError{Reason: "open contour end on the periodic seam has no counterpart"}
			}
		}
	}

	return curves, rings, nil
}

// closeCyclicRows closes the remaining open curves of a periodic raster
// along the top and bottom rows, which are cyclic. The walk direction keeps
// the grid interior on the right: decreasing columns along the top row,
// increasing columns along the bottom row. Crossing the seam inserts the two
// seam vertices so the wrap stays explicit.
func closeCyclicRows(open []orb.LineString, w, h float64) ([]orb.Ring, error) {
	if len(open) == 0 {
		return nil, nil
	}

	for _, c := range open {
		for _, p := range []orb.Point{c[0], c[len(c)-1]} {
			if p.Y() != 0 && p.Y() != h {
				return nil, &TopologyError{Reason: "open contour end off the raster boundary"}
			}
		}
	}

	// walk distance from an end to a start along the end's row
	dist := func(end, start orb.Point) float64 {
		if start.Y() != end.Y() {
			return math.Inf(1)
		}
		if end.Y() == 0 {
			return cyclicDist(start.X(), end.X(), w)
		}
		return cyclicDist(end.X(), start.X(), w)
	}

	used := make([]bool, len(open))
	var rings []orb.Ring

	for i := range open {
		if used[i] {
			continue
		}

		ring := orb.Ring{}
		cur := i
		for {
			used[cur] = true
			ring = appendPoints(ring, open[cur])

			end := open[cur][len(open[cur])-1]

			next := -1
			best := math.Inf(1)
			for j := range open {
				if used[j] && j != i {
					continue
				}

				if d := dist(end, open[j][0]); d < best {
					next = j
					best = d
				}
			}
			if next == -1 {
				return nil, &TopologyError{Reason: "interval boundary does not close along a cyclic row"}
			}

			// seam crossing along the row
			start := open[next][0]
			if end.Y() == 0 && start.X() > end.X() {
				ring = appendPoints(ring, orb.LineString{{0, 0}, {w, 0}})
			}
			if end.Y() == h && start.X() < end.X() {
				ring = appendPoints(ring, orb.LineString{{w, h}, {0, h}})
			}

			if next == i {
				break
			}
			cur = next
		}

		ring = append(ring, ring[0])
		rings = append(rings, ring)
	}

	return rings, nil
}

// rowRing is a full cyclic row, wound with the grid interior on the right.
func rowRing(w, y float64, top bool) orb.Ring {
	n := int(w)
	ring := make(orb.Ring, 0, n+2)

	if top {
		for x := n; x >= 0; x-- {
			ring = append(ring, orb.Point{float64(x), y})
		}
	} else {
		for x := 0; x <= n; x++ {
			ring = append(ring, orb.Point{float64(x), y})
		}
	}

	return append(ring, ring[0])
}

// appendPoints appends points to a ring, skipping a leading point that
// repeats the ring's current end.
func appendPoints(ring orb.Ring, points orb.LineString) orb.Ring {
	for _, p := range points {
		if len(ring) > 0 && ring[len(ring)-1].Equal(p) {
			continue
		}
		ring = append(ring, p)
	}
	return ring
}
