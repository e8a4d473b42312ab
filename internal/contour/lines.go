package contour

import "github.com/paulmach/orb"

// joinSegment adds a new oriented segment to the set of polylines, stitching
// it onto any line it continues. Orientation is never flipped: segments only
// join head to tail, which preserves the high-side-on-the-right invariant.
func joinSegment(lines []orb.LineString, seg orb.LineString) []orb.LineString {
	// find all lines which can be joined with seg
	joinable := []int{}
	for j := 0; j < len(lines); j++ {
		if isClosed(lines[j]) {
			continue
		}

		if canJoin(seg, lines[j]) || canJoin(lines[j], seg) {
			joinable = append(joinable, j)

			if len(joinable) == 2 {
				break
			}
		}
	}

	if len(joinable) == 0 {
		return append(lines, seg)
	}

	// join all joinable lines; the first join keeps the segment's other
	// endpoint exposed, so the second joinable line always still matches
	joined := seg
	for _, index := range joinable {
		if next, ok := joinLines(joined, lines[index]); ok {
			joined = next
		}
	}

	lines[joinable[0]] = joined

	if len(joinable) == 2 {
		// remove the element at index joinable[1] from lines
		lines[joinable[1]] = lines[len(lines)-1]
		lines[len(lines)-1] = nil
		lines = lines[:len(lines)-1]
	}

	return lines
}

// canJoin reports whether head's last vertex equals tail's first vertex.
func canJoin(head, tail orb.LineString) bool {
	return head[len(head)-1].Equal(tail[0])
}

// joinLines stitches two lines that share an endpoint, keeping direction.
func joinLines(l1, l2 orb.LineString) (orb.LineString, bool) {
	if canJoin(l1, l2) {
		return stitchLines(l1, l2), true
	}
	if canJoin(l2, l1) {
		return stitchLines(l2, l1), true
	}

	return nil, false
}

// stitchLines appends all points of line2 (except the first one) to line1
func stitchLines(line1, line2 orb.LineString) orb.LineString {
	// 1 because the last point of line1 equals the first point of line2
	for i := 1; i < len(line2); i++ {
		line1 = append(line1, line2[i])
	}

	return line1
}

// isClosed reports whether a polyline forms a loop.
func isClosed(line orb.LineString) bool {
	return len(line) > 2 && line[0].Equal(line[len(line)-1])
}
