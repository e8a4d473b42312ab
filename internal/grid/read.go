package grid

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// Read loads an ESRI ASCII Grid from the given path. Files ending in .gz are
// decompressed on the fly.
func Read(path string) (EsriASCIIRaster, error) {
	file, err := os.Open(path)
	if err != nil {
		return EsriASCIIRaster{}, err
	}
	defer file.Close()

	var reader io.Reader = file

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return EsriASCIIRaster{}, err
		}
		defer gz.Close()

		reader = gz
	}

	return ParseEsriASCIIRaster(reader)
}
