package export

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/terrafold/contour-utils/internal/contour"
)

func TestLines(t *testing.T) {
	lines := []contour.Line{
		{Level: 5, Parts: []orb.LineString{{{0, 0}, {1, 1}}}},
		{Level: 10, Parts: []orb.LineString{{{2, 2}, {3, 3}}}},
	}

	fc := Lines(lines, 256)

	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(fc.Features))
	}

	for i, f := range fc.Features {
		if _, ok := f.Geometry.(orb.MultiLineString); !ok {
			t.Errorf("feature %d geometry is %T, want MultiLineString", i, f.Geometry)
		}
		if f.Properties["level"] != lines[i].Level {
			t.Errorf("feature %d level = %v, want %v", i, f.Properties["level"], lines[i].Level)
		}
		if _, ok := f.Properties["colorIndex"]; !ok {
			t.Errorf("feature %d has no colorIndex", i)
		}
	}

	if _, err := json.Marshal(fc); err != nil {
		t.Errorf("marshaling failed: %v", err)
	}
}

func TestIntervals(t *testing.T) {
	ring := orb.Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}

	intervals := []contour.Interval{
		{Min: math.Inf(-1), Max: 5, Polygons: orb.MultiPolygon{{ring}}},
		{Min: 5, Max: 10, Polygons: nil},
		{Min: 10, Max: math.Inf(1), Polygons: orb.MultiPolygon{{ring}}},
	}

	fc := Intervals(intervals, 256)

	if len(fc.Features) != 3 {
		t.Fatalf("got %d features, want 3", len(fc.Features))
	}

	// infinite bounds are omitted, finite ones kept
	if _, ok := fc.Features[0].Properties["minLevel"]; ok {
		t.Error("unbounded minLevel must be omitted")
	}
	if fc.Features[0].Properties["maxLevel"] != 5.0 {
		t.Errorf("maxLevel = %v, want 5", fc.Features[0].Properties["maxLevel"])
	}
	if fc.Features[1].Properties["minLevel"] != 5.0 || fc.Features[1].Properties["maxLevel"] != 10.0 {
		t.Errorf("bounded interval properties = %v", fc.Features[1].Properties)
	}
	if _, ok := fc.Features[2].Properties["maxLevel"]; ok {
		t.Error("unbounded maxLevel must be omitted")
	}

	// an empty interval still produces a marshalable feature
	if geom, ok := fc.Features[1].Geometry.(orb.MultiPolygon); !ok || geom == nil {
		t.Errorf("empty interval geometry = %v, want an empty MultiPolygon", fc.Features[1].Geometry)
	}

	if _, err := json.Marshal(fc); err != nil {
		t.Errorf("marshaling failed: %v", err)
	}
}
