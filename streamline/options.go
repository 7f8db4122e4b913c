package streamline

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fieldlines/field"
)

// Options control how a line set is built. All spatial parameters are
// in field space.
type Options struct {
	// Spawn region per axis. A zero ZRange selects 2D mode: a single
	// seed plane at z=0.
	XRange Range
	YRange Range
	ZRange Range

	// DT is the Euler integration step in virtual time.
	DT float64

	// VirtualTime bounds the integration. A trajectory takes at most
	// ceil(VirtualTime/DT)+1 steps.
	VirtualTime float64

	// MaxAnchors bounds the anchors kept per line; a built line has at
	// most MaxAnchors+1 points.
	MaxAnchors int

	// Padding is the margin beyond the spawn region a trajectory may
	// travel before being truncated.
	Padding float64

	// NoiseFactor is the jitter amplitude applied to every seed
	// coordinate. Negative selects the default: half the normalized y
	// step. Zero disables jitter.
	NoiseFactor float64

	// Repeats is the number of seeds per grid cell.
	Repeats int

	// Seed feeds the build's private RNG. Identical options produce
	// bit-identical line sets.
	Seed int64

	// Projection, when set, maps each anchor after downsampling,
	// e.g. onto a surface. Stride selection is unaffected by it.
	Projection func(p r3.Vec) r3.Vec

	// Scheme, when set, stamps one value per anchor for gradient
	// coloring. Evaluated on the field in native space.
	Scheme field.Scalar

	// Workers fans the integration out over a worker pool. Zero uses
	// GOMAXPROCS, one forces inline integration.
	Workers int
}

// DefaultOptions returns a usable starting point: a 14x8 spawn region,
// three seconds of virtual time and generous padding.
func DefaultOptions() Options {
	return Options{
		XRange:      Range{Min: -7, Max: 7},
		YRange:      Range{Min: -4, Max: 4},
		DT:          0.05,
		VirtualTime: 3,
		MaxAnchors:  100,
		Padding:     3,
		NoiseFactor: -1,
		Repeats:     1,
	}
}
