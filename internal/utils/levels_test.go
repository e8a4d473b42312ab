package utils

import (
	"reflect"
	"testing"

	"github.com/terrafold/contour-utils/internal/grid"
)

func TestParseLevels(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []float64
		wantErr  bool
	}{
		{name: "single", input: "5", expected: []float64{5}},
		{name: "list", input: "-10,0,2.5,100", expected: []float64{-10, 0, 2.5, 100}},
		{name: "spaces", input: " 1, 2 ,3 ", expected: []float64{1, 2, 3}},
		{name: "not increasing", input: "1,1", wantErr: true},
		{name: "decreasing", input: "5,1", wantErr: true},
		{name: "garbage", input: "1,x", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := ParseLevels(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("expected an error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(levels, tt.expected) {
				t.Errorf("ParseLevels(%q) = %v, want %v", tt.input, levels, tt.expected)
			}
		})
	}
}

func TestStepLevels(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		step     float64
		expected []float64
	}{
		{name: "aligned", min: 0, max: 10, step: 5, expected: []float64{0, 5, 10}},
		{name: "offset", min: 1, max: 11, step: 5, expected: []float64{5, 10}},
		{name: "negative range", min: -12, max: 3, step: 5, expected: []float64{-10, -5, 0}},
		{name: "no multiple inside", min: 1, max: 4, step: 5, expected: nil},
		{name: "zero step", min: 0, max: 10, step: 0, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := StepLevels(tt.min, tt.max, tt.step)
			if !reflect.DeepEqual(levels, tt.expected) {
				t.Errorf("StepLevels(%v, %v, %v) = %v, want %v", tt.min, tt.max, tt.step, levels, tt.expected)
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(false, true, false, true)
	if opts.Interpretation != grid.Postings {
		t.Error("expected postings interpretation")
	}
	if !opts.EdgePolicy.AverageFirstRow || opts.EdgePolicy.AverageLastRow {
		t.Error("wrong pole row flags")
	}
	if !opts.EdgePolicy.AverageColumns || !opts.EdgePolicy.WrapColumns {
		t.Error("wrap on a posting raster must average the seam columns")
	}

	opts = BuildOptions(true, false, false, true)
	if opts.Interpretation != grid.Cells {
		t.Error("expected cells interpretation")
	}
	if opts.EdgePolicy.AverageColumns {
		t.Error("a cell raster has no duplicated seam column to average")
	}
	if !opts.EdgePolicy.WrapColumns {
		t.Error("wrap flag must carry through")
	}
}

func TestBuildLevels(t *testing.T) {
	g := grid.New([][]float64{
		{2, 3},
		{7, 11},
	})

	levels, err := BuildLevels(g, "1,2", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(levels, []float64{1, 2}) {
		t.Errorf("explicit levels = %v, want [1 2]", levels)
	}

	levels, err = BuildLevels(g, "", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(levels, []float64{5, 10}) {
		t.Errorf("stepped levels = %v, want [5 10]", levels)
	}

	if _, err := BuildLevels(g, "", 0); err == nil {
		t.Error("expected an error without -levels and -step")
	}

	if _, err := BuildLevels(g, "", 100); err == nil {
		t.Error("expected an error when no multiple falls inside the range")
	}
}
