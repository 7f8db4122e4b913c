package scene

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Fixed points of the demo field, where -x+y^2 and -2y+3x^2 both
// vanish.
var equilibria = [][2]float64{
	{0, 0},
	{math.Pow(2.0/3.0, 2.0/3.0), math.Pow(2.0/3.0, 1.0/3.0)},
}

// Semi-axes of the certified region of attraction, the ellipse
// x^2/(2/9) + y^2/(4/9) = 1.
var (
	roaSemiX = math.Sqrt(2.0 / 9.0)
	roaSemiY = math.Sqrt(4.0 / 9.0)
)

var (
	axisColor = rl.LightGray
	roaColor  = rl.Color{R: 255, G: 128, B: 128, A: 255}
)

// handleInput processes keyboard input.
func (s *Scene) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
	}
	if rl.IsKeyPressed(rl.KeyE) && s.phase == phaseFlowing {
		s.endFlow()
	}
	if rl.IsKeyPressed(rl.KeyR) && !s.lines.Flowing() && !s.stage.Animating() {
		if err := s.startFlow(); err != nil {
			slog.Warn("restart flow", "error", err)
		}
	}

	s.handleCameraInput()
}

// handleCameraInput processes camera pan/zoom controls.
func (s *Scene) handleCameraInput() {
	const panSpeed = 8.0

	if rl.IsKeyDown(rl.KeyRight) {
		s.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		s.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		s.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		s.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		s.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		s.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		s.cam.Reset()
	}
}

// Draw renders one frame: axes, equilibria, the line set and, once the
// flow has wound down, the region of attraction.
func (s *Scene) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	s.drawAxes()
	s.drawEquilibria()
	s.paths.Draw(s.stage, s.cam)
	s.drawRegionOfAttraction()
	s.drawHUD()

	rl.EndDrawing()
}

// drawAxes draws the coordinate axes with ticks every half field unit.
func (s *Scene) drawAxes() {
	k := float32(s.cfg.Scene.Scaling)
	s.drawAxis(-k, 0, k, 0)
	s.drawAxis(0, -k, 0, k)

	for _, v := range []float64{-1, -0.5, 0.5, 1} {
		w := float32(v) * k
		label := strconv.FormatFloat(v, 'g', -1, 64)

		sx, sy := s.cam.WorldToScreen(w, 0)
		rl.DrawLineEx(rl.Vector2{X: sx, Y: sy - 4}, rl.Vector2{X: sx, Y: sy + 4}, 1, axisColor)
		rl.DrawText(label, int32(sx)-6, int32(sy)+8, 14, axisColor)

		sx, sy = s.cam.WorldToScreen(0, w)
		rl.DrawLineEx(rl.Vector2{X: sx - 4, Y: sy}, rl.Vector2{X: sx + 4, Y: sy}, 1, axisColor)
		rl.DrawText(label, int32(sx)+8, int32(sy)-7, 14, axisColor)
	}
}

func (s *Scene) drawAxis(x1, y1, x2, y2 float32) {
	sx1, sy1 := s.cam.WorldToScreen(x1, y1)
	sx2, sy2 := s.cam.WorldToScreen(x2, y2)
	rl.DrawLineEx(rl.Vector2{X: sx1, Y: sy1}, rl.Vector2{X: sx2, Y: sy2}, 1, axisColor)
}

// drawEquilibria marks the field's fixed points.
func (s *Scene) drawEquilibria() {
	k := float32(s.cfg.Scene.Scaling)
	for _, eq := range equilibria {
		wx, wy := float32(eq[0])*k, float32(eq[1])*k
		if !s.cam.IsVisible(wx, wy, 0) {
			continue
		}
		sx, sy := s.cam.WorldToScreen(wx, wy)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 4, rl.Yellow)
	}
}

// drawRegionOfAttraction traces the certified ellipse counterclockwise
// from its rightmost point, up to the current reveal progress.
func (s *Scene) drawRegionOfAttraction() {
	if s.roaProgress <= 0 {
		return
	}
	k := s.cfg.Scene.Scaling
	a := float32(roaSemiX * k)
	b := float32(roaSemiY * k)

	const segments = 96
	n := int(s.roaProgress * segments)
	prev := s.roaPoint(0, a, b)
	for i := 1; i <= n; i++ {
		cur := s.roaPoint(float64(i)/segments, a, b)
		rl.DrawLineEx(prev, cur, 2, roaColor)
		prev = cur
	}
}

// roaPoint maps trace progress to a screen point on the ellipse.
func (s *Scene) roaPoint(t float64, a, b float32) rl.Vector2 {
	ang := t * 2 * math.Pi
	sx, sy := s.cam.WorldToScreen(a*float32(math.Cos(ang)), b*float32(math.Sin(ang)))
	return rl.Vector2{X: sx, Y: sy}
}

// drawHUD draws the status lines.
func (s *Scene) drawHUD() {
	rl.DrawText(fmt.Sprintf("Lines: %d", len(s.set.Lines)), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Elapsed: %.1fs  %s", s.elapsed, s.phaseLabel()), 10, 35, 20, rl.White)
	rl.DrawText("[space] pause  [E] end flow  [R] restart  [home] reset view", 10, 60, 20, rl.Gray)
	if s.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}
}

func (s *Scene) phaseLabel() string {
	switch s.phase {
	case phaseFlowing:
		return "flowing"
	case phaseEnding:
		return "winding down"
	default:
		return "revealed"
	}
}
