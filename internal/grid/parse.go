package grid

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// EsriASCIIRaster is a grid read from an ESRI ASCII Grid file, together with
// its georeference header values.
type EsriASCIIRaster struct {
	Grid
	Xcenter, Ycenter *float64
	Xcorner, Ycorner *float64
	CellSize         float64
	NoDataValue      *float64
}

// ParseEsriASCIIRaster reads an ESRI ASCII Grid. Samples equal to the
// NODATA_VALUE header are stored as NaN.
func ParseEsriASCIIRaster(reader io.Reader) (EsriASCIIRaster, error) {
	raster := EsriASCIIRaster{}
	remainingHeaders := []string{"NCOLS", "NROWS", "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER", "CELLSIZE", "NODATA_VALUE"}
	stillIsHeader := true
	rowIndex := 0
	var data [][]float64

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		keyword := strings.ToUpper(fields[0])

		if stillIsHeader && contains(remainingHeaders, keyword) {
			remainingHeaders = remove(remainingHeaders, keyword)

			// there can either be corner or center not both
			if keyword == "XLLCENTER" || keyword == "YLLCENTER" {
				remainingHeaders = remove(remainingHeaders, "XLLCORNER")
				remainingHeaders = remove(remainingHeaders, "YLLCORNER")
			}
			if keyword == "XLLCORNER" || keyword == "YLLCORNER" {
				remainingHeaders = remove(remainingHeaders, "XLLCENTER")
				remainingHeaders = remove(remainingHeaders, "YLLCENTER")
			}

			if err := parseHeaderLine(fields, &raster); err != nil {
				return raster, err
			}
		} else {
			if stillIsHeader {
				// first data line; NODATA_VALUE is an optional header so it
				// may still be pending
				remainingHeaders = remove(remainingHeaders, "NODATA_VALUE")

				if len(remainingHeaders) > 0 {
					return raster, fmt.Errorf("raster doesn't include all mandatory headers (missing %s)", strings.Join(remainingHeaders, ", "))
				}

				stillIsHeader = false
				data = make([][]float64, raster.Rows)
			}

			row, err := parseDataLine(fields, raster.Cols, raster.NoDataValue)
			if err != nil {
				return raster, err
			}

			data[rowIndex] = row
			rowIndex++

			if rowIndex >= raster.Rows {
				break
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return raster, err
	}

	if rowIndex < raster.Rows {
		return raster, fmt.Errorf("raster data ended after %d of %d rows", rowIndex, raster.Rows)
	}

	raster.Data = data

	return raster, nil
}

func parseHeaderLine(fields []string, raster *EsriASCIIRaster) error {
	if len(fields) != 2 {
		return fmt.Errorf("header line must have exactly two fields")
	}

	switch strings.ToUpper(fields[0]) {
	case "NCOLS":
		i, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return err
		}
		raster.Cols = int(i)
	case "NROWS":
		i, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return err
		}
		raster.Rows = int(i)
	case "XLLCENTER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		raster.Xcenter = &f
	case "XLLCORNER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		raster.Xcorner = &f
	case "YLLCENTER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		raster.Ycenter = &f
	case "YLLCORNER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		raster.Ycorner = &f
	case "CELLSIZE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		if f <= 0.0 {
			return fmt.Errorf("CELLSIZE must be greater than 0")
		}
		raster.CellSize = f
	case "NODATA_VALUE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		raster.NoDataValue = &f
	default:
		return fmt.Errorf("unknown header keyword: %s", fields[0])
	}

	return nil
}

func parseDataLine(fields []string, cols int, noData *float64) ([]float64, error) {
	row := make([]float64, cols)

	if len(fields) < cols {
		return row, fmt.Errorf("raster data row is too short")
	}

	for i := 0; i < cols; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return row, err
		}

		if noData != nil && f == *noData {
			f = math.NaN()
		}

		row[i] = f
	}

	return row, nil
}

// contains checks whether a slice contains a string
func contains(arr []string, element string) bool {
	for _, cur := range arr {
		if cur == element {
			return true
		}
	}
	return false
}

// remove removes a string from a slice
func remove(arr []string, element string) []string {
	var remaining []string

	for i := 0; i < len(arr); i++ {
		if element != arr[i] {
			remaining = append(remaining, arr[i])
		}
	}

	return remaining
}
