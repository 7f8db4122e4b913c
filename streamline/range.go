// Package streamline integrates vector fields into bounded polylines.
package streamline

import "math"

// Range describes one spawn axis as (Min, Max, Step). The zero value is
// the degenerate 2D axis: after normalization it yields the single grid
// coordinate 0.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// normalize expands the range for inclusive stepping: a zero Step
// defaults to 0.5, and Max is pushed up by one Step so the grid
// includes the user-supplied upper bound.
func (r Range) normalize() Range {
	if r.Step == 0 {
		r.Step = 0.5
	}
	r.Max += r.Step
	return r
}

// values enumerates the grid coordinates Min, Min+Step, ... strictly
// below Max. Must be called on a normalized range.
func (r Range) values() []float64 {
	n := int(math.Ceil((r.Max - r.Min) / r.Step))
	if n < 0 {
		n = 0
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.Min + float64(i)*r.Step
	}
	return vals
}

// inside reports whether x lies within the padded axis interval. The
// range is already expanded by one Step, so the usable upper bound is
// Max+padding-Step: padding is applied to the raw bounds exactly once.
func (r Range) inside(x, padding float64) bool {
	return x >= r.Min-padding && x <= r.Max+padding-r.Step
}
