package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fieldlines/camera"
	"github.com/pthm-cable/fieldlines/stage"
	"github.com/pthm-cable/fieldlines/streamline"
)

// PathRenderer draws the windowed portion of each stream line.
type PathRenderer struct {
	style Style
}

// NewPathRenderer creates a renderer with the given styling backend.
// A nil style falls back to the default magnitude gradient.
func NewPathRenderer(style Style) *PathRenderer {
	if style == nil {
		style = DefaultGradient()
	}
	return &PathRenderer{style: style}
}

// Draw renders every line on the stage through the camera.
func (r *PathRenderer) Draw(st *stage.Stage, cam *camera.Camera) {
	st.Each(func(p *stage.Path, v *stage.Visual) {
		r.DrawLine(p.Line, v.WindowLo, v.WindowHi, v.StrokeWidth, v.Opacity, cam)
	})
}

// DrawLine renders the [lo, hi] window of a single line as stroked
// segments, colored per segment from the line's sampled values.
func (r *PathRenderer) DrawLine(line *streamline.Line, lo, hi float64, strokeWidth float32, opacity float64, cam *camera.Camera) {
	if opacity <= 0 || hi <= lo {
		return
	}
	pts, vals := windowed(line.Points, line.Values, lo, hi)
	if len(pts) < 2 {
		return
	}

	prevX, prevY := cam.WorldToScreen(float32(pts[0].X), float32(pts[0].Y))
	for i := 1; i < len(pts); i++ {
		x, y := cam.WorldToScreen(float32(pts[i].X), float32(pts[i].Y))
		if !offscreen(cam, prevX, prevY, x, y, strokeWidth) {
			value := 0.0
			if vals != nil {
				value = (vals[i-1] + vals[i]) / 2
			}
			c := r.style.ColorAt(value)
			c.A = uint8(float64(c.A) * opacity)
			rl.DrawLineEx(
				rl.Vector2{X: prevX, Y: prevY},
				rl.Vector2{X: x, Y: y},
				strokeWidth,
				c,
			)
		}
		prevX, prevY = x, y
	}
}

// windowed extracts the sub-polyline covered by the window [lo, hi],
// where 0 is the first anchor and 1 the last. Fractional window ends
// land between anchors and are interpolated. vals, when present,
// follows the same slicing.
func windowed(pts []r3.Vec, vals []float64, lo, hi float64) ([]r3.Vec, []float64) {
	n := len(pts)
	if n < 2 {
		return nil, nil
	}
	a := clamp01(lo) * float64(n-1)
	b := clamp01(hi) * float64(n-1)
	if b <= a {
		return nil, nil
	}

	out := []r3.Vec{pointAt(pts, a)}
	var outVals []float64
	if vals != nil {
		outVals = []float64{valueAt(vals, a)}
	}
	for i := int(a) + 1; float64(i) <= b && i < n; i++ {
		out = append(out, pts[i])
		if vals != nil {
			outVals = append(outVals, vals[i])
		}
	}
	if b > float64(int(b)) {
		out = append(out, pointAt(pts, b))
		if vals != nil {
			outVals = append(outVals, valueAt(vals, b))
		}
	}
	return out, outVals
}

// pointAt interpolates the polyline at a continuous anchor index.
func pointAt(pts []r3.Vec, t float64) r3.Vec {
	i := int(t)
	if i >= len(pts)-1 {
		return pts[len(pts)-1]
	}
	f := t - float64(i)
	return r3.Add(r3.Scale(1-f, pts[i]), r3.Scale(f, pts[i+1]))
}

func valueAt(vals []float64, t float64) float64 {
	i := int(t)
	if i >= len(vals)-1 {
		return vals[len(vals)-1]
	}
	f := t - float64(i)
	return (1-f)*vals[i] + f*vals[i+1]
}

// offscreen reports whether a segment lies entirely past one viewport
// edge, with a margin for the stroke.
func offscreen(cam *camera.Camera, x1, y1, x2, y2, margin float32) bool {
	return (x1 < -margin && x2 < -margin) ||
		(y1 < -margin && y2 < -margin) ||
		(x1 > cam.ViewportW+margin && x2 > cam.ViewportW+margin) ||
		(y1 > cam.ViewportH+margin && y2 > cam.ViewportH+margin)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
