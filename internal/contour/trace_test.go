package contour

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/paulmach/orb"

	"github.com/terrafold/contour-utils/internal/grid"
)

func peakGrid() *grid.Grid {
	return grid.New([][]float64{
		{0, 0, 0},
		{0, 10, 0},
		{0, 0, 0},
	})
}

// paraboloidGrid is size x size with a minimum at the center.
func paraboloidGrid(size int) *grid.Grid {
	data := make([][]float64, size)
	c := float64(size-1) / 2

	for row := 0; row < size; row++ {
		data[row] = make([]float64, size)
		for col := 0; col < size; col++ {
			dx := float64(col) - c
			dy := float64(row) - c
			data[row][col] = dx*dx + dy*dy
		}
	}

	return grid.New(data)
}

func TestTracePeak(t *testing.T) {
	lines, err := Trace(peakGrid(), []float64{5}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Level != 5 {
		t.Errorf("Level = %v, want 5", lines[0].Level)
	}
	if len(lines[0].Parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(lines[0].Parts))
	}

	part := lines[0].Parts[0]
	expected := orb.LineString{{1, 1.5}, {1.5, 1}, {1, 0.5}, {0.5, 1}, {1, 1.5}}
	if !part.Equal(expected) {
		t.Errorf("part = %v, want %v", part, expected)
	}

	if !isClosed(part) {
		t.Error("part must be closed")
	}

	// the high side stays on the right of travel
	if area := signedArea(orb.Ring(part)); area >= 0 {
		t.Errorf("signed area = %v, want negative", area)
	}
}

func TestTraceOrderAndDeterminism(t *testing.T) {
	g := paraboloidGrid(21)
	levels := []float64{10.5, 40.5, 90.5, 150.5}

	first, err := Trace(g, levels, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(levels) {
		t.Fatalf("got %d lines, want %d", len(first), len(levels))
	}
	for i, line := range first {
		if line.Level != levels[i] {
			t.Errorf("line %d has level %v, want %v", i, line.Level, levels[i])
		}
		if len(line.Parts) == 0 {
			t.Errorf("line %d has no parts", i)
		}
	}

	second, err := Trace(g, levels, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("tracing the same grid twice produced different output")
	}
}

func TestTraceSkipsLevelsOutsideRange(t *testing.T) {
	lines, err := Trace(peakGrid(), []float64{-5, 5, 100}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 1 || lines[0].Level != 5 {
		t.Errorf("got %v, want the single in-range level 5", lines)
	}
}

func TestTraceLevelEqualToMaximum(t *testing.T) {
	lines, err := Trace(peakGrid(), []float64{10}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Level != 10 {
		t.Errorf("Level = %v, want 10", lines[0].Level)
	}
	if len(lines[0].Parts) != 1 || !isClosed(lines[0].Parts[0]) {
		t.Fatalf("expected one closed loop around the maximum, got %v", lines[0].Parts)
	}
	if area := signedArea(orb.Ring(lines[0].Parts[0])); area >= 0 {
		t.Errorf("signed area = %v, want negative", area)
	}
}

func TestTraceLevelEqualToMinimum(t *testing.T) {
	lines, err := Trace(peakGrid(), []float64{0}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Level != 0 {
		t.Errorf("Level = %v, want 0", lines[0].Level)
	}

	// every sample sits on the high side of the grid minimum, so there is
	// nothing to separate
	if len(lines[0].Parts) != 0 {
		t.Errorf("a level at the grid minimum must trace empty, got %v", lines[0].Parts)
	}
}

func TestTraceSaddle(t *testing.T) {
	t.Run("low center disconnects", func(t *testing.T) {
		g := grid.New([][]float64{
			{0, 10},
			{10, 0},
		})

		lines, err := Trace(g, []float64{5}, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []orb.LineString{
			{{0.5, 1}, {0, 0.5}},
			{{0.5, 0}, {1, 0.5}},
		}
		if len(lines) != 1 || !reflect.DeepEqual(lines[0].Parts, expected) {
			t.Errorf("parts = %v, want %v", lines[0].Parts, expected)
		}
	})

	t.Run("high center connects", func(t *testing.T) {
		g := grid.New([][]float64{
			{2, 10},
			{10, 2},
		})

		lines, err := Trace(g, []float64{5}, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []orb.LineString{
			{{0.375, 0}, {0, 0.375}},
			{{0.625, 1}, {1, 0.625}},
		}
		if len(lines) != 1 || !reflect.DeepEqual(lines[0].Parts, expected) {
			t.Errorf("parts = %v, want %v", lines[0].Parts, expected)
		}
	})
}

// fragmentedGrid has a high plateau whose contour is cut into two open
// polylines by missing samples above and below it.
func fragmentedGrid() *grid.Grid {
	nan := math.NaN()
	return grid.New([][]float64{
		{0, 0, nan, 0, 0},
		{0, 10, 10, 10, 0},
		{0, 10, 10, 10, 0},
		{0, 10, 10, 10, 0},
		{0, 0, nan, 0, 0},
	})
}

func TestTraceMissingSamplesFragment(t *testing.T) {
	lines, err := Trace(fragmentedGrid(), []float64{5}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	expected := []orb.LineString{
		{{1, 0.5}, {0.5, 1}, {0.5, 2}, {0.5, 3}, {1, 3.5}},
		{{3, 3.5}, {3.5, 3}, {3.5, 2}, {3.5, 1}, {3, 0.5}},
	}
	if !reflect.DeepEqual(lines[0].Parts, expected) {
		t.Errorf("parts = %v, want %v", lines[0].Parts, expected)
	}

	for i, part := range lines[0].Parts {
		if isClosed(part) {
			t.Errorf("part %d must stay open next to missing samples", i)
		}
	}
}

func TestTraceInvalidInput(t *testing.T) {
	t.Run("grid too small", func(t *testing.T) {
		_, err := Trace(grid.New([][]float64{{1, 2}}), []float64{1}, Options{})

		var gridErr *grid.InvalidGridError
		if !errors.As(err, &gridErr) {
			t.Errorf("expected *grid.InvalidGridError, got %v", err)
		}
	})

	t.Run("empty level list", func(t *testing.T) {
		_, err := Trace(peakGrid(), nil, Options{})

		var levelErr *InvalidLevelListError
		if !errors.As(err, &levelErr) {
			t.Errorf("expected *InvalidLevelListError, got %v", err)
		}
	})

	t.Run("unsorted levels", func(t *testing.T) {
		_, err := Trace(peakGrid(), []float64{5, 1}, Options{})

		var levelErr *InvalidLevelListError
		if !errors.As(err, &levelErr) {
			t.Errorf("expected *InvalidLevelListError, got %v", err)
		}
	})

	t.Run("non-finite level", func(t *testing.T) {
		_, err := Trace(peakGrid(), []float64{1, math.NaN()}, Options{})

		var levelErr *InvalidLevelListError
		if !errors.As(err, &levelErr) {
			t.Errorf("expected *InvalidLevelListError, got %v", err)
		}
	})
}

func TestTraceLevelSingle(t *testing.T) {
	line, err := TraceLevel(peakGrid(), 5, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Level != 5 || len(line.Parts) != 1 {
		t.Errorf("got %v, want one part at level 5", line)
	}

	// out of range levels come back empty but carry the level
	line, err = TraceLevel(peakGrid(), 100, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Level != 100 || len(line.Parts) != 0 {
		t.Errorf("got %v, want no parts at level 100", line)
	}
}
