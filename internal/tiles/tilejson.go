package tiles

import (
	"encoding/json"
	"os"
	"path"
)

// vectorLayer represents a vector layer of a tile.json
type vectorLayer struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
}

// tileJSON represents a tile.json
type tileJSON struct {
	TileJSON     string        `json:"tilejson"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Scheme       string        `json:"scheme"`
	Minzoom      uint8         `json:"minzoom"`
	Maxzoom      uint8         `json:"maxzoom"`
	VectorLayers []vectorLayer `json:"vector_layers,omitempty"`
}

var vectorLayerFields = map[string]map[string]string{
	"contours": {
		"level":      "Number",
		"colorIndex": "Number",
	},
	"intervals": {
		"minLevel":   "Number",
		"maxLevel":   "Number",
		"colorIndex": "Number",
	},
	"peaks": {
		"level": "Number",
		"text":  "String",
	},
}

// writeTileJSON writes a tile.json describing the pyramid
func writeTileJSON(outputDirectory, name string, maxLod uint8, layerNames []string) error {
	vectorLayers := make([]vectorLayer, len(layerNames))
	for i, layerName := range layerNames {
		fields, found := vectorLayerFields[layerName]
		if !found {
			fields = map[string]string{}
		}

		vectorLayers[i] = vectorLayer{
			ID:     layerName,
			Fields: fields,
		}
	}

	obj := tileJSON{
		TileJSON:     "2.2.0",
		Name:         name,
		Description:  "Contour vector tiles of " + name,
		Scheme:       "xyz",
		Minzoom:      0,
		Maxzoom:      maxLod,
		VectorLayers: vectorLayers,
	}

	f, err := os.Create(path.Join(outputDirectory, "tile.json"))
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return err
	}

	if _, err = f.Write(bytes); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
