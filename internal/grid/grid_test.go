package grid

import (
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name    string
		data    [][]float64
		wantErr bool
	}{
		{
			name:    "valid 2x2",
			data:    [][]float64{{1, 2}, {3, 4}},
			wantErr: false,
		},
		{
			name:    "valid with missing samples",
			data:    [][]float64{{nan, 2}, {3, nan}},
			wantErr: false,
		},
		{
			name:    "too small",
			data:    [][]float64{{1, 2}},
			wantErr: true,
		},
		{
			name:    "single column",
			data:    [][]float64{{1}, {2}, {3}},
			wantErr: true,
		},
		{
			name:    "ragged rows",
			data:    [][]float64{{1, 2, 3}, {4, 5}},
			wantErr: true,
		},
		{
			name:    "no finite samples",
			data:    [][]float64{{nan, nan}, {math.Inf(1), nan}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.data).Validate()

			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr {
				if _, ok := err.(*InvalidGridError); !ok {
					t.Errorf("expected *InvalidGridError, got %T", err)
				}
			}
		})
	}
}

func TestRange(t *testing.T) {
	nan := math.NaN()

	g := New([][]float64{
		{nan, 4, math.Inf(1)},
		{-2, 7, nan},
	})

	min, max, ok := g.Range()
	if !ok {
		t.Fatal("expected ok")
	}
	if min != -2 || max != 7 {
		t.Errorf("Range() = %v, %v, want -2, 7", min, max)
	}

	empty := New([][]float64{{nan, nan}, {nan, nan}})
	if _, _, ok := empty.Range(); ok {
		t.Error("expected ok == false for all-NaN grid")
	}
}

func TestEdgePolicyNoop(t *testing.T) {
	g := New([][]float64{{1, 2}, {3, 4}})

	if out := (EdgePolicy{}).Apply(g, Postings); out != g {
		t.Error("empty policy must return the grid unchanged")
	}

	// WrapColumns alone changes nothing for postings, the seam column is
	// already part of the data
	if out := (EdgePolicy{WrapColumns: true}).Apply(g, Postings); out != g {
		t.Error("WrapColumns on postings must return the grid unchanged")
	}
}

func TestEdgePolicyAverageRows(t *testing.T) {
	nan := math.NaN()

	g := New([][]float64{
		{1, 2, nan, 3},
		{5, 6, 7, 8},
		{9, 9, 9, 9},
	})

	out := EdgePolicy{AverageFirstRow: true, AverageLastRow: true}.Apply(g, Postings)

	for col := 0; col < 4; col++ {
		if out.Data[0][col] != 2 {
			t.Errorf("first row col %d = %v, want 2", col, out.Data[0][col])
		}
		if out.Data[2][col] != 9 {
			t.Errorf("last row col %d = %v, want 9", col, out.Data[2][col])
		}
	}

	// input stays untouched
	if !math.IsNaN(g.Data[0][2]) || g.Data[0][0] != 1 {
		t.Error("input grid was modified")
	}
}

func TestEdgePolicyAverageColumns(t *testing.T) {
	nan := math.NaN()

	g := New([][]float64{
		{1, 0, 3},
		{nan, 0, 6},
		{2, 0, nan},
		{nan, 0, nan},
	})

	out := EdgePolicy{AverageColumns: true}.Apply(g, Postings)

	expected := [][2]float64{{2, 2}, {6, 6}, {2, 2}}
	for row, want := range expected {
		if out.Data[row][0] != want[0] || out.Data[row][2] != want[1] {
			t.Errorf("row %d = %v/%v, want %v/%v", row, out.Data[row][0], out.Data[row][2], want[0], want[1])
		}
	}
	if !math.IsNaN(out.Data[3][0]) || !math.IsNaN(out.Data[3][2]) {
		t.Error("row of missing samples must stay missing")
	}
}

func TestEdgePolicyWrapCells(t *testing.T) {
	g := New([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})

	out := EdgePolicy{WrapColumns: true}.Apply(g, Cells)

	if out.Cols != 4 {
		t.Fatalf("Cols = %d, want 4", out.Cols)
	}
	for row := 0; row < out.Rows; row++ {
		if out.Data[row][3] != out.Data[row][0] {
			t.Errorf("row %d: seam column %v != first column %v", row, out.Data[row][3], out.Data[row][0])
		}
	}

	if g.Cols != 3 || len(g.Data[0]) != 3 {
		t.Error("input grid was modified")
	}
}
