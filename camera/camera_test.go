package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/fieldlines/streamline"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	// Should be centered on the origin
	if cam.CenterX != 0 || cam.CenterY != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.CenterX, cam.CenterY)
	}
	// Default view spans frameUnits world units vertically
	if math.Abs(float64(cam.Scale-720.0/8)) > 0.001 {
		t.Errorf("expected scale 90, got %f", cam.Scale)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestYAxisPointsUp(t *testing.T) {
	cam := New(1280, 720)

	// World +y is screen up, so the screen y must shrink
	_, sy := cam.WorldToScreen(0, 1)
	if sy >= 360 {
		t.Errorf("expected +y above screen center, got sy=%f", sy)
	}
	_, sy = cam.WorldToScreen(0, -1)
	if sy <= 360 {
		t.Errorf("expected -y below screen center, got sy=%f", sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.Pan(150, -75)
	cam.ZoomBy(1.5)

	// Test roundtrip at various positions
	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPan(t *testing.T) {
	cam := New(1280, 720)

	// A screen-down pan moves the center toward world -y
	cam.Pan(90, 90)
	if math.Abs(float64(cam.CenterX-1)) > 0.001 || math.Abs(float64(cam.CenterY+1)) > 0.001 {
		t.Errorf("expected center (1, -1), got (%f, %f)", cam.CenterX, cam.CenterY)
	}
}

func TestScaleClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetScale(cam.MinScale / 10)
	if cam.Scale != cam.MinScale {
		t.Errorf("expected scale clamped to %f, got %f", cam.MinScale, cam.Scale)
	}

	cam.SetScale(cam.MaxScale * 10)
	if cam.Scale != cam.MaxScale {
		t.Errorf("expected scale clamped to %f, got %f", cam.MaxScale, cam.Scale)
	}
}

func TestFitRanges(t *testing.T) {
	cam := New(1280, 720)

	// Normalized [-1, 1, 0.1] ranges: the box top sits at Max-Step = 1,
	// so with padding 0.1 the framed area is 2.2 x 2.2 world units.
	r := streamline.Range{Min: -1, Max: 1.1, Step: 0.1}
	cam.FitRanges(r, r, 0.1)

	if math.Abs(float64(cam.CenterX)) > 0.001 || math.Abs(float64(cam.CenterY)) > 0.001 {
		t.Errorf("expected centered fit, got (%f, %f)", cam.CenterX, cam.CenterY)
	}
	// Height is the limiting dimension: 720 / 2.2
	if math.Abs(float64(cam.Scale-720/2.2)) > 0.01 {
		t.Errorf("expected scale %f, got %f", 720/2.2, cam.Scale)
	}

	// The padded box corners are visible, points beyond them are not
	if !cam.IsVisible(1.05, 1.05, 0) {
		t.Error("padded box corner should be visible")
	}
	if cam.IsVisible(0, 5, 0) {
		t.Error("point far above the box should not be visible")
	}
}

func TestFitRangesAsymmetric(t *testing.T) {
	cam := New(1280, 720)

	// A wide flat box is limited by the viewport width
	x := streamline.Range{Min: -7, Max: 7.5, Step: 0.5}
	y := streamline.Range{Min: -1, Max: 1.5, Step: 0.5}
	cam.FitRanges(x, y, 0)

	wantScale := 1280.0 / 14.0
	if math.Abs(float64(cam.Scale)-wantScale) > 0.01 {
		t.Errorf("expected scale %f, got %f", wantScale, cam.Scale)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)

	// Visible area is about 14.2 x 8 world units around the origin
	if !cam.IsVisible(0, 0, 0.1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(0, 6, 0.1) {
		t.Error("far point should not be visible")
	}
	// Point past the edge with a large radius still overlaps the view
	if !cam.IsVisible(0, 4.5, 1) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 720)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if math.Abs(float64(maxX-minX)-1280.0/90) > 0.01 {
		t.Errorf("expected visible width %f, got %f", 1280.0/90, maxX-minX)
	}
	if math.Abs(float64(maxY-minY)-8) > 0.01 {
		t.Errorf("expected visible height 8, got %f", maxY-minY)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	r := streamline.Range{Min: -1, Max: 1.1, Step: 0.1}
	cam.FitRanges(r, r, 0.1)
	fitted := cam.Scale

	cam.Pan(300, 200)
	cam.ZoomBy(2)
	cam.Reset()

	if cam.CenterX != 0 || cam.CenterY != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.CenterX, cam.CenterY)
	}
	if cam.Scale != fitted {
		t.Errorf("expected fitted scale %f, got %f", fitted, cam.Scale)
	}
}

func TestResizeKeepsView(t *testing.T) {
	cam := New(1280, 720)
	cam.Pan(90, 0)

	cam.Resize(1920, 1080)

	if cam.ViewportW != 1920 || cam.ViewportH != 1080 {
		t.Errorf("expected viewport 1920x1080, got %fx%f", cam.ViewportW, cam.ViewportH)
	}
	if math.Abs(float64(cam.CenterX-1)) > 0.001 {
		t.Errorf("expected center preserved, got %f", cam.CenterX)
	}
}
