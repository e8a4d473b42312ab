package contour

import "github.com/paulmach/orb"

// MapLines converts the intrinsic vertices of every line with the caller's
// coordinate mapper, returning new lines; the input is never modified. Set
// reverse when the mapper does not preserve handedness: vertex order is then
// flipped before mapping so the orientation convention survives.
func MapLines(lines []Line, mapper orb.Projection, reverse bool) []Line {
	out := make([]Line, len(lines))

	for i, line := range lines {
		parts := make([]orb.LineString, len(line.Parts))
		for j, part := range line.Parts {
			parts[j] = mapVertices(part, mapper, reverse)
		}

		out[i] = Line{Level: line.Level, Parts: parts}
	}

	return out
}

// MapIntervals is MapLines for interval polygons. Consecutive vertices that
// map to the same output point (a ring passing through a pole or a seam)
// collapse to one.
func MapIntervals(intervals []Interval, mapper orb.Projection, reverse bool) []Interval {
	out := make([]Interval, len(intervals))

	for i, iv := range intervals {
		polys := make(orb.MultiPolygon, len(iv.Polygons))
		for j, poly := range iv.Polygons {
			rings := make(orb.Polygon, len(poly))
			for k, ring := range poly {
				rings[k] = orb.Ring(mapVertices(orb.LineString(ring), mapper, reverse))
			}
			polys[j] = rings
		}

		out[i] = Interval{Min: iv.Min, Max: iv.Max, Polygons: polys}
	}

	return out
}

func mapVertices(part orb.LineString, mapper orb.Projection, reverse bool) orb.LineString {
	mapped := make(orb.LineString, len(part))
	for k := range part {
		src := part[k]
		if reverse {
			src = part[len(part)-1-k]
		}
		mapped[k] = mapper(src)
	}

	return collapseDuplicates(mapped)
}

// collapseDuplicates drops consecutive identical vertices, which appear when
// several intrinsic vertices map to one singular point.
func collapseDuplicates(ls orb.LineString) orb.LineString {
	if len(ls) < 2 {
		return ls
	}

	out := ls[:1]
	for _, p := range ls[1:] {
		if !p.Equal(out[len(out)-1]) {
			out = append(out, p)
		}
	}

	return out
}
