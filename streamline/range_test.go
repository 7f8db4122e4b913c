package streamline

import (
	"math"
	"testing"
)

func TestRangeNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Range
		want Range
	}{
		{"explicit step", Range{-1, 1, 0.5}, Range{-1, 1.5, 0.5}},
		{"default step", Range{-2, 2, 0}, Range{-2, 2.5, 0.5}},
		{"zero range is the flat z axis", Range{}, Range{0, 0.5, 0.5}},
		{"fine step", Range{-1, 1, 0.1}, Range{-1, 1.1, 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.normalize()
			if math.Abs(got.Min-tt.want.Min) > 1e-12 ||
				math.Abs(got.Max-tt.want.Max) > 1e-12 ||
				math.Abs(got.Step-tt.want.Step) > 1e-12 {
				t.Errorf("normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRangeValuesIncludeRawMax(t *testing.T) {
	// Expansion by one step makes the user-supplied upper bound part
	// of the grid.
	vals := Range{-1, 1, 0.5}.normalize().values()

	want := []float64{-1, -0.5, 0, 0.5, 1}
	if len(vals) != len(want) {
		t.Fatalf("got %d values %v, want %d", len(vals), vals, len(want))
	}
	for i := range want {
		if math.Abs(vals[i]-want[i]) > 1e-12 {
			t.Errorf("values[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
}

func TestRangeValuesFineStep(t *testing.T) {
	vals := Range{-1, 1, 0.1}.normalize().values()

	if len(vals) != 21 {
		t.Fatalf("got %d values, want 21", len(vals))
	}
	if math.Abs(vals[20]-1.0) > 1e-9 {
		t.Errorf("last value = %v, want 1.0", vals[20])
	}
}

func TestRangeValuesDegenerateZ(t *testing.T) {
	vals := Range{}.normalize().values()

	if len(vals) != 1 || vals[0] != 0 {
		t.Errorf("degenerate z axis should yield the single coordinate 0, got %v", vals)
	}
}

func TestRangeInside(t *testing.T) {
	r := Range{-1, 1, 0.5}.normalize() // usable bounds [-1, 1]

	tests := []struct {
		name    string
		x       float64
		padding float64
		want    bool
	}{
		{"center", 0, 0, true},
		{"raw max", 1.0, 0, true},
		{"just past raw max", 1.01, 0, false},
		{"raw min", -1.0, 0, true},
		{"just past raw min", -1.01, 0, false},
		{"padding admits overshoot", 1.4, 0.5, true},
		{"past padded bound", 1.6, 0.5, false},
		{"padded lower bound", -1.5, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.inside(tt.x, tt.padding); got != tt.want {
				t.Errorf("inside(%v, %v) = %v, want %v", tt.x, tt.padding, got, tt.want)
			}
		})
	}
}
