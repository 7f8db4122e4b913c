package field

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Field maps a position to a velocity vector. Implementations must be
// pure: the same position always yields the same vector, so line sets
// built from a field are reproducible.
type Field func(p r3.Vec) r3.Vec

// Scalar reduces the local velocity to a single value used for
// gradient coloring.
type Scalar func(v r3.Vec) float64

// Magnitude is the default coloring scheme: the Euclidean norm of the
// local velocity.
func Magnitude(v r3.Vec) float64 {
	return r3.Norm(v)
}

// Uniform returns a constant field.
func Uniform(v r3.Vec) Field {
	return func(r3.Vec) r3.Vec { return v }
}

// Sink returns the field f(p) = -p, flowing straight into the origin.
func Sink() Field {
	return func(p r3.Vec) r3.Vec { return r3.Scale(-1, p) }
}

// Saddle returns the classic saddle field f(x,y) = (x, -y): attracting
// along y, repelling along x.
func Saddle() Field {
	return func(p r3.Vec) r3.Vec { return r3.Vec{X: p.X, Y: -p.Y} }
}

// Spiral returns a field combining inward radial pull with rotation
// about the origin. inward > 0 gives a stable spiral.
func Spiral(inward, angular float64) Field {
	return func(p r3.Vec) r3.Vec {
		radial := r3.Scale(-inward, p)
		tangent := r3.Scale(angular, r3.Vec{X: -p.Y, Y: p.X})
		return r3.Add(radial, tangent)
	}
}

// Sum returns the pointwise sum of fields.
func Sum(fields ...Field) Field {
	return func(p r3.Vec) r3.Vec {
		var total r3.Vec
		for _, f := range fields {
			total = r3.Add(total, f(p))
		}
		return total
	}
}

// Scaled returns f with every vector multiplied by k.
func Scaled(f Field, k float64) Field {
	return func(p r3.Vec) r3.Vec { return r3.Scale(k, f(p)) }
}
