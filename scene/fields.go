package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fieldlines/config"
	"github.com/pthm-cable/fieldlines/field"
	"github.com/pthm-cable/fieldlines/renderer"
	"github.com/pthm-cable/fieldlines/streamline"
)

// Lyapunov returns the demo field f(x,y) = (-x + y^2, -2y + 3x^2).
// The origin is asymptotically stable; a second, unstable equilibrium
// sits at ((2/3)^(2/3), (2/3)^(1/3)).
func Lyapunov() field.Field {
	return func(p r3.Vec) r3.Vec {
		return r3.Vec{X: -p.X + p.Y*p.Y, Y: -2*p.Y + 3*p.X*p.X}
	}
}

// NamedField resolves the configured field name.
func NamedField(cfg *config.Config) (field.Field, error) {
	switch cfg.Scene.Field {
	case "", "lyapunov":
		return Lyapunov(), nil
	case "sink":
		return field.Sink(), nil
	case "saddle":
		return field.Saddle(), nil
	case "spiral":
		return field.Spiral(0.5, 1), nil
	case "turbulence":
		t := cfg.Scene.Turbulence
		return field.Turbulence(t.Seed, t.Scale, t.Strength), nil
	default:
		return nil, fmt.Errorf("scene: unknown field %q", cfg.Scene.Field)
	}
}

// BuildSet integrates the configured field into a stream line set in
// scene units. Scheme values are stamped only when lines are drawn
// with a gradient, since flat styles never read them.
func BuildSet(cfg *config.Config) (*streamline.Set, error) {
	f, err := NamedField(cfg)
	if err != nil {
		return nil, err
	}

	opts := cfg.Derived.Options
	if k := cfg.Scene.Scaling; k != 0 && k != 1 {
		opts.Projection = func(p r3.Vec) r3.Vec { return r3.Scale(k, p) }
	}
	if useGradient(cfg) {
		opts.Scheme = field.Magnitude
	}
	return streamline.Build(f, opts)
}

// Style builds the line style from config: a flat color when one is
// set, a gradient over the configured ramp, or the built-in ramp.
func Style(cfg *config.Config) (renderer.Style, error) {
	if cfg.Derived.Flat != nil {
		return renderer.Flat{Color: toRaylib(*cfg.Derived.Flat)}, nil
	}
	if len(cfg.Derived.Colors) == 1 {
		return renderer.Flat{Color: toRaylib(cfg.Derived.Colors[0])}, nil
	}
	if len(cfg.Derived.Colors) >= 2 {
		ramp := make([]rl.Color, len(cfg.Derived.Colors))
		for i, c := range cfg.Derived.Colors {
			ramp[i] = toRaylib(c)
		}
		return renderer.NewGradient(ramp, cfg.Style.MinValue, cfg.Style.MaxValue)
	}
	return renderer.DefaultGradient(), nil
}

// useGradient mirrors Style: a flat color or a single-entry ramp draws
// without scheme values.
func useGradient(cfg *config.Config) bool {
	return cfg.Derived.Flat == nil && len(cfg.Derived.Colors) != 1
}

func toRaylib(c config.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
