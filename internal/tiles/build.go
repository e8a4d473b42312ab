package tiles

import (
	"context"
	"fmt"
	"math"
	"os"
	"path"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"

	"github.com/terrafold/contour-utils/internal/utils"
)

const tileSize = mvt.DefaultExtent

// BuildPyramid writes gzipped vector tiles for all LODs from 0 to maxLod.
// The collections hold features in intrinsic raster coordinates; extent is
// the raster's larger intrinsic dimension.
func BuildPyramid(outputPath string, collections map[string]*geojson.FeatureCollection, maxLod uint8, extent float64) {
	for lod := uint8(0); lod <= maxLod; lod++ {
		lodDir := path.Join(outputPath, fmt.Sprintf("%d", lod))
		start := time.Now()

		if !utils.IsDirectory(lodDir) {
			err := os.MkdirAll(lodDir, os.ModePerm)
			if err != nil {
				fmt.Println(err)
				return
			}
		}

		buildLODTiles(lod, lodDir, collections, extent)

		fmt.Println("    ✔️  Finished tiles for LOD", lod, "in", time.Since(start).String())
	}
}

func buildLODTiles(lod uint8, lodDir string, collections map[string]*geojson.FeatureCollection, extent float64) {
	// how many tiles one row / col has
	tilesPerRowCol := uint32(math.Pow(2, float64(lod)))

	layers := cloneLayers(collections)

	// project features to pixels
	pixels := uint64(tileSize) * uint64(tilesPerRowCol)
	factor := float64(pixels) / extent
	projectLayersInPlace(layers, func(p orb.Point) orb.Point {
		return orb.Point{
			p[0] * factor,
			p[1] * factor,
		}
	})

	// set layer version to v2
	for _, l := range layers {
		l.Version = 2
	}

	layers.Simplify(simplify.DouglasPeucker(1.0))
	layers.RemoveEmpty(10.0, 20.0)

	colWaitGrp := sync.WaitGroup{}

	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))

	for col := uint32(0); col < tilesPerRowCol; col++ {
		colWaitGrp.Add(1)
		go func(col uint32) {
			defer colWaitGrp.Done()

			// create column directory
			colPath := path.Join(lodDir, fmt.Sprintf("%d", col))
			if !utils.IsDirectory(colPath) {
				err := os.MkdirAll(colPath, os.ModePerm)
				if err != nil {
					fmt.Println(err)
					return
				}
			}

			rowWaitGrp := sync.WaitGroup{}

			for row := uint32(0); row < tilesPerRowCol; row++ {
				rowWaitGrp.Add(1)
				go func(row uint32) {
					defer rowWaitGrp.Done()

					sem.Acquire(context.Background(), 1)
					defer sem.Release(1)

					data, err := createTile(col, row, layers)
					if err != nil {
						fmt.Printf("Error while creating tile %d/%d/%d\n", lod, col, row)
						return
					}

					tilePath := path.Join(colPath, fmt.Sprintf("%d.pbf", row))
					writeTile(tilePath, data)
				}(row)
			}

			rowWaitGrp.Wait()
		}(col)
	}

	colWaitGrp.Wait()
}

func createTile(x uint32, y uint32, layers mvt.Layers) ([]byte, error) {
	layersClone := deepCloneLayers(layers)

	xOffset := float64(x * tileSize)
	yOffset := float64(y * tileSize)
	projectLayersInPlace(layersClone, func(p orb.Point) orb.Point {
		return orb.Point{
			p[0] - xOffset,
			p[1] - yOffset,
		}
	})

	layersClone.Clip(mvt.MapboxGLDefaultExtentBound)
	layersClone.RemoveEmpty(0, 0)

	// marshal tile
	data, err := mvt.MarshalGzipped(layersClone)
	if err != nil {
		return []byte{}, err
	}

	return data, nil
}

func writeTile(tilePath string, data []byte) error {
	f, err := os.Create(tilePath)
	if err != nil {
		return err
	}

	_, err = f.Write(data)
	if err != nil {
		return err
	}

	return f.Close()
}

// projectLayersInPlace projects all features of all layers
func projectLayersInPlace(layers mvt.Layers, projection orb.Projection) {
	for _, layer := range layers {
		for _, feature := range layer.Features {
			feature.Geometry = project(feature.Geometry, projection)
		}
	}
}

func project(geometry orb.Geometry, projection orb.Projection) orb.Geometry {
	switch g := geometry.(type) {
	case orb.Point:
		return projection(g)
	case orb.MultiPoint:
		for i := range g {
			g[i] = projection(g[i])
		}
		return g
	case orb.LineString:
		for i := range g {
			g[i] = projection(g[i])
		}
		return g
	case orb.MultiLineString:
		for i := range g {
			for j := range g[i] {
				g[i][j] = projection(g[i][j])
			}
		}
		return g
	case orb.Polygon:
		for i := range g {
			for j := range g[i] {
				g[i][j] = projection(g[i][j])
			}
		}
		return g
	case orb.MultiPolygon:
		for i := range g {
			for j := range g[i] {
				for k := range g[i][j] {
					g[i][j][k] = projection(g[i][j][k])
				}
			}
		}
		return g
	}

	return geometry
}

// cloneLayers builds fresh mvt layers from the collections, so the pyramid
// can project them per LOD without touching the caller's features.
func cloneLayers(collections map[string]*geojson.FeatureCollection) mvt.Layers {
	cloned := make(map[string]*geojson.FeatureCollection, len(collections))
	for name, fc := range collections {
		cloned[name] = cloneCollection(fc)
	}

	return mvt.NewLayers(cloned)
}
