package streamline

import "gonum.org/v1/gonum/spatial/r3"

// Line is a single stream line: a downsampled trajectory through the
// field. Immutable once built.
type Line struct {
	// Points holds the anchors, at most MaxAnchors+1 of them. When a
	// projection was supplied the anchors are in projected space.
	Points []r3.Vec

	// Values holds one color scheme value per anchor, evaluated on the
	// field in its native space. Nil when no scheme was requested.
	Values []float64

	// Duration is the virtual time the raw trajectory survived before
	// truncation, i.e. step count times DT. Animation pacing derives
	// from it.
	Duration float64
}

// Set is the immutable result of a Build call: every surviving stream
// line plus the normalized spawn geometry the animator needs.
type Set struct {
	Lines []*Line

	// Normalized spawn ranges (Max already expanded by one Step).
	XRange Range
	YRange Range
	ZRange Range

	DT          float64
	VirtualTime float64
}
