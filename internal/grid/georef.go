package grid

import "github.com/paulmach/orb"

// Projection returns a coordinate mapper from intrinsic (col, row) vertices
// to the raster's georeferenced coordinates. Row 0 is the top of the raster,
// so rows count down from the upper edge.
func (r *EsriASCIIRaster) Projection() orb.Projection {
	cell := r.CellSize
	if cell == 0 {
		cell = 1
	}

	x0 := 0.0
	switch {
	case r.Xcorner != nil:
		x0 = *r.Xcorner
	case r.Xcenter != nil:
		x0 = *r.Xcenter
	}

	y0 := 0.0
	switch {
	case r.Ycorner != nil:
		y0 = *r.Ycorner
	case r.Ycenter != nil:
		y0 = *r.Ycenter
	}

	top := float64(r.Rows - 1)

	return func(p orb.Point) orb.Point {
		return orb.Point{x0 + p.X()*cell, y0 + (top-p.Y())*cell}
	}
}
