package grid

import (
	"fmt"
	"math"
)

// Interpretation states what a sample stands for: a point measurement at a
// grid-line intersection (posting) or the value of a finite-area cell.
type Interpretation int

const (
	Postings Interpretation = iota
	Cells
)

// InvalidGridError is returned when a grid cannot be contoured at all.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("invalid grid: %s", e.Reason)
}

// Grid is a 2-D field of samples. Data is indexed [row][col] and NaN marks
// missing samples.
type Grid struct {
	Rows, Cols int
	Data       [][]float64
}

// New builds a grid from row-major data.
func New(data [][]float64) *Grid {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}

	return &Grid{Rows: rows, Cols: cols, Data: data}
}

// Dims returns the dimensions of the grid.
func (g *Grid) Dims() (cols, rows int) {
	return g.Cols, g.Rows
}

// Z returns the value of a grid sample at (col, row).
// It will panic if col or row are out of bounds for the grid.
func (g *Grid) Z(col, row int) float64 {
	return g.Data[row][col]
}

// Validate checks that the grid is usable for tracing: at least 2x2,
// rectangular and holding at least one finite sample.
func (g *Grid) Validate() error {
	if g.Rows < 2 || g.Cols < 2 {
		return &InvalidGridError{Reason: fmt.Sprintf("must be at least 2x2, got %dx%d", g.Rows, g.Cols)}
	}

	if len(g.Data) != g.Rows {
		return &InvalidGridError{Reason: "row count does not match data"}
	}

	hasFinite := false
	for row := 0; row < g.Rows; row++ {
		if len(g.Data[row]) != g.Cols {
			return &InvalidGridError{Reason: fmt.Sprintf("row %d has %d columns, want %d", row, len(g.Data[row]), g.Cols)}
		}

		for col := 0; col < g.Cols; col++ {
			if isFinite(g.Data[row][col]) {
				hasFinite = true
			}
		}
	}

	if !hasFinite {
		return &InvalidGridError{Reason: "no finite samples"}
	}

	return nil
}

// Range returns the minimum and maximum finite sample. ok is false when the
// grid holds no finite sample at all.
func (g *Grid) Range() (min, max float64, ok bool) {
	min = math.Inf(1)
	max = math.Inf(-1)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			v := g.Data[row][col]
			if !isFinite(v) {
				continue
			}

			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			ok = true
		}
	}

	return min, max, ok
}

// clone returns a deep copy of the grid.
func (g *Grid) clone() *Grid {
	data := make([][]float64, g.Rows)
	for row := 0; row < g.Rows; row++ {
		data[row] = make([]float64, g.Cols)
		copy(data[row], g.Data[row])
	}

	return &Grid{Rows: g.Rows, Cols: g.Cols, Data: data}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
