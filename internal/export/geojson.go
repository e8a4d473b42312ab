// Package export turns contour output into GeoJSON feature collections for
// the rendering layer.
package export

import (
	"encoding/json"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/terrafold/contour-utils/internal/contour"
	"github.com/terrafold/contour-utils/internal/palette"
)

// Lines converts contour lines into a feature collection, one feature per
// level, tagged with the level and its palette slot.
func Lines(lines []contour.Line, paletteSize int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	levels := make([]float64, len(lines))
	for i, line := range lines {
		levels[i] = line.Level
	}
	indices := palette.LevelIndex(levels, paletteSize)

	for i, line := range lines {
		geom := make(orb.MultiLineString, len(line.Parts))
		copy(geom, line.Parts)

		f := geojson.NewFeature(geom)
		f.Properties["level"] = line.Level
		if len(indices) > i {
			f.Properties["colorIndex"] = indices[i]
		}

		fc.Append(f)
	}

	return fc
}

// Intervals converts interval polygons into a feature collection. Infinite
// bounds are omitted from the properties because JSON has no encoding for
// them; a missing minLevel or maxLevel marks an unbounded outer interval.
func Intervals(intervals []contour.Interval, paletteSize int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	bounds := make([]float64, len(intervals))
	for i, iv := range intervals {
		bounds[i] = iv.Min
	}
	indices := palette.SelectColors(bounds, paletteSize)

	for i, iv := range intervals {
		geom := iv.Polygons
		if geom == nil {
			geom = orb.MultiPolygon{}
		}

		f := geojson.NewFeature(geom)
		if !math.IsInf(iv.Min, 0) {
			f.Properties["minLevel"] = iv.Min
		}
		if !math.IsInf(iv.Max, 0) {
			f.Properties["maxLevel"] = iv.Max
		}
		if len(indices) > i {
			f.Properties["colorIndex"] = indices[i]
		}

		fc.Append(f)
	}

	return fc
}

// WriteFeatureCollection marshals a feature collection to a file.
func WriteFeatureCollection(path string, fc *geojson.FeatureCollection) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
