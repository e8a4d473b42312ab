package tiles

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
)

// cloneFeatures copies features with fresh geometries and properties, so
// in-place projection of one copy never shows through in another.
func cloneFeatures(features []*geojson.Feature) []*geojson.Feature {
	out := make([]*geojson.Feature, len(features))

	for i, f := range features {
		clone := geojson.NewFeature(orb.Clone(f.Geometry))
		clone.ID = f.ID
		clone.Type = f.Type
		clone.Properties = f.Properties.Clone()

		out[i] = clone
	}

	return out
}

// cloneCollection deep copies a feature collection.
func cloneCollection(fc *geojson.FeatureCollection) *geojson.FeatureCollection {
	clone := geojson.NewFeatureCollection()
	clone.Features = cloneFeatures(fc.Features)

	return clone
}

// deepCloneLayers deep copies mvt layers, keeping the per-LOD layer set
// untouched while each tile projects and clips its own copy.
func deepCloneLayers(layers mvt.Layers) mvt.Layers {
	out := make(mvt.Layers, len(layers))

	for i, l := range layers {
		out[i] = &mvt.Layer{
			Name:     l.Name,
			Version:  l.Version,
			Extent:   l.Extent,
			Features: cloneFeatures(l.Features),
		}
	}

	return out
}
