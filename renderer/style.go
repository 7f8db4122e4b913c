// Package renderer draws stream line sets through a camera.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/interp"
)

// Style maps a line's sampled field value to a stroke color.
type Style interface {
	ColorAt(value float64) rl.Color
}

// Flat paints every segment with a single color.
type Flat struct {
	Color rl.Color
}

func (f Flat) ColorAt(float64) rl.Color { return f.Color }

// Gradient interpolates between a sequence of colors laid out evenly
// across a value range. Values outside the range take the end colors.
type Gradient struct {
	r, g, b, a interp.PiecewiseLinear
}

// NewGradient builds a gradient from at least two colors spanning
// [minValue, maxValue].
func NewGradient(colors []rl.Color, minValue, maxValue float64) (*Gradient, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("renderer: gradient needs at least two colors, got %d", len(colors))
	}
	if maxValue <= minValue {
		return nil, fmt.Errorf("renderer: gradient range [%v, %v] is empty", minValue, maxValue)
	}

	xs := make([]float64, len(colors))
	var rs, gs, bs, as []float64
	for i, c := range colors {
		xs[i] = minValue + (maxValue-minValue)*float64(i)/float64(len(colors)-1)
		rs = append(rs, float64(c.R))
		gs = append(gs, float64(c.G))
		bs = append(bs, float64(c.B))
		as = append(as, float64(c.A))
	}

	grad := &Gradient{}
	for _, fit := range []struct {
		pl *interp.PiecewiseLinear
		ys []float64
	}{
		{&grad.r, rs}, {&grad.g, gs}, {&grad.b, bs}, {&grad.a, as},
	} {
		if err := fit.pl.Fit(xs, fit.ys); err != nil {
			return nil, fmt.Errorf("renderer: fitting gradient channel: %w", err)
		}
	}
	return grad, nil
}

func (g *Gradient) ColorAt(value float64) rl.Color {
	return rl.Color{
		R: uint8(g.r.Predict(value) + 0.5),
		G: uint8(g.g.Predict(value) + 0.5),
		B: uint8(g.b.Predict(value) + 0.5),
		A: uint8(g.a.Predict(value) + 0.5),
	}
}

// DefaultColors is the magnitude ramp used when no styling is given:
// deep blue through green and yellow into red.
func DefaultColors() []rl.Color {
	return []rl.Color{
		{R: 0x1C, G: 0x75, B: 0x8A, A: 255},
		{R: 0x83, G: 0xC1, B: 0x67, A: 255},
		{R: 0xFF, G: 0xFF, B: 0x00, A: 255},
		{R: 0xFC, G: 0x62, B: 0x55, A: 255},
	}
}

// DefaultGradient spans DefaultColors over field magnitudes 0 to 2.
func DefaultGradient() *Gradient {
	grad, err := NewGradient(DefaultColors(), 0, 2)
	if err != nil {
		panic(err)
	}
	return grad
}
