package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseLevels parses a comma-separated, strictly increasing level list.
func ParseLevels(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	levels := make([]float64, 0, len(fields))

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", field, err)
		}

		if len(levels) > 0 && levels[len(levels)-1] >= f {
			return nil, fmt.Errorf("levels must be strictly increasing")
		}

		levels = append(levels, f)
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels given")
	}

	return levels, nil
}

// StepLevels returns all multiples of step inside [min, max].
func StepLevels(min, max, step float64) []float64 {
	if step <= 0 || max < min {
		return nil
	}

	var levels []float64
	for v := math.Ceil(min/step) * step; v <= max; v += step {
		levels = append(levels, v)
	}

	return levels
}
