package tiles

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/terrafold/contour-utils/internal/grid"
)

// Peaks returns a point feature for every strict local maximum of the grid,
// in intrinsic coordinates. Samples on the raster edge or next to missing
// data never count as peaks.
func Peaks(g *grid.Grid) *geojson.FeatureCollection {
	peaks := geojson.NewFeatureCollection()

	for row := 1; row < g.Rows-1; row++ {
		for col := 1; col < g.Cols-1; col++ {
			value := g.Z(col, row)
			if math.IsNaN(value) || math.IsInf(value, 0) {
				continue
			}

			isPeak := true

			// compare sample with all direct neighbours
			for compareRow := row - 1; compareRow <= row+1 && isPeak; compareRow++ {
				for compareCol := col - 1; compareCol <= col+1; compareCol++ {
					if row == compareRow && col == compareCol {
						continue
					}

					compareValue := g.Z(compareCol, compareRow)

					// a missing or equal neighbour disqualifies the sample;
					// plateaus produce no peak per plateau cell
					if !(compareValue < value) {
						isPeak = false
						break
					}
				}
			}

			if isPeak {
				feature := geojson.NewFeature(orb.Point{float64(col), float64(row)})
				feature.Properties["level"] = value
				feature.Properties["text"] = fmt.Sprintf("%.0f", math.Round(value))

				peaks.Append(feature)
			}
		}
	}

	return peaks
}
