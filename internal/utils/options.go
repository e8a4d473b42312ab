package utils

import (
	"errors"
	"fmt"

	"github.com/terrafold/contour-utils/internal/contour"
	"github.com/terrafold/contour-utils/internal/grid"
)

// BuildOptions translates the shared CLI flags into tracing options. A cell
// raster spanning a full period has no duplicated seam column to average, so
// wrap only averages columns for posting rasters.
func BuildOptions(cells, poleFirst, poleLast, wrap bool) contour.Options {
	interp := grid.Postings
	if cells {
		interp = grid.Cells
	}

	return contour.Options{
		Interpretation: interp,
		EdgePolicy: grid.EdgePolicy{
			AverageFirstRow: poleFirst,
			AverageLastRow:  poleLast,
			AverageColumns:  wrap && !cells,
			WrapColumns:     wrap,
		},
	}
}

// BuildLevels resolves the -levels / -step flags against the grid range.
func BuildLevels(g *grid.Grid, levelList string, step float64) ([]float64, error) {
	if levelList != "" {
		return ParseLevels(levelList)
	}

	if step <= 0 {
		return nil, errors.New("either -levels or -step must be given")
	}

	min, max, ok := g.Range()
	if !ok {
		return nil, errors.New("raster has no finite samples")
	}

	levels := StepLevels(min, max, step)
	if len(levels) == 0 {
		return nil, fmt.Errorf("no multiple of %v falls inside the value range [%v, %v]", step, min, max)
	}

	return levels, nil
}
