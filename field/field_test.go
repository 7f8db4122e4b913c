package field

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestMagnitude(t *testing.T) {
	if got := Magnitude(r3.Vec{X: 3, Y: 4}); math.Abs(got-5) > 1e-12 {
		t.Errorf("Magnitude(3,4,0) = %v, want 5", got)
	}
	if got := Magnitude(r3.Vec{}); got != 0 {
		t.Errorf("Magnitude(zero) = %v, want 0", got)
	}
}

func TestSinkPointsAtOrigin(t *testing.T) {
	f := Sink()
	positions := []r3.Vec{
		{X: 1, Y: 0},
		{X: -2, Y: 3},
		{X: 0.5, Y: -0.5, Z: 1},
	}

	for _, p := range positions {
		v := f(p)
		// f(p) = -p exactly
		want := r3.Scale(-1, p)
		if r3.Norm(r3.Sub(v, want)) > 1e-12 {
			t.Errorf("Sink()(%v) = %v, want %v", p, v, want)
		}
	}
}

func TestSaddleAxes(t *testing.T) {
	f := Saddle()

	v := f(r3.Vec{X: 2, Y: 0})
	if v.X <= 0 || v.Y != 0 {
		t.Errorf("saddle should repel along x, got %v", v)
	}

	v = f(r3.Vec{X: 0, Y: 2})
	if v.X != 0 || v.Y >= 0 {
		t.Errorf("saddle should attract along y, got %v", v)
	}
}

func TestSpiralComponents(t *testing.T) {
	f := Spiral(1, 2)
	p := r3.Vec{X: 1, Y: 0}
	v := f(p)

	// Radial part is -p, tangential part is angular*(-y, x)
	if math.Abs(v.X-(-1)) > 1e-12 {
		t.Errorf("inward component = %v, want -1", v.X)
	}
	if math.Abs(v.Y-2) > 1e-12 {
		t.Errorf("tangential component = %v, want 2", v.Y)
	}
}

func TestSumAndScaled(t *testing.T) {
	f := Sum(Uniform(r3.Vec{X: 1}), Uniform(r3.Vec{Y: 2}))
	v := f(r3.Vec{})
	if v.X != 1 || v.Y != 2 {
		t.Errorf("Sum = %v, want (1, 2, 0)", v)
	}

	g := Scaled(f, 3)
	v = g(r3.Vec{})
	if v.X != 3 || v.Y != 6 {
		t.Errorf("Scaled = %v, want (3, 6, 0)", v)
	}
}

func TestTurbulenceDeterministic(t *testing.T) {
	a := Turbulence(42, 0.5, 1.0)
	b := Turbulence(42, 0.5, 1.0)

	samples := []r3.Vec{
		{X: 0, Y: 0},
		{X: 1.3, Y: -2.7},
		{X: -5, Y: 5, Z: 0.5},
	}

	for _, p := range samples {
		va, vb := a(p), b(p)
		if va != vb {
			t.Errorf("same seed diverged at %v: %v vs %v", p, va, vb)
		}
	}

	// A different seed should produce a different field
	c := Turbulence(43, 0.5, 1.0)
	same := true
	for _, p := range samples {
		if a(p) != c(p) {
			same = false
		}
	}
	if same {
		t.Error("seeds 42 and 43 produced identical fields")
	}
}

func TestTurbulenceStrengthBound(t *testing.T) {
	f := Turbulence(7, 1.0, 2.0)

	for x := -3.0; x <= 3.0; x += 0.5 {
		for y := -3.0; y <= 3.0; y += 0.5 {
			v := f(r3.Vec{X: x, Y: y})
			if Magnitude(v) > 2.0+1e-9 {
				t.Fatalf("velocity %v at (%v,%v) exceeds strength bound", v, x, y)
			}
		}
	}
}
