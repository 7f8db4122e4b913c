// Package camera provides a 2D camera mapping scene coordinates to the screen.
package camera

import "github.com/pthm-cable/fieldlines/streamline"

// frameUnits is the world-space height of the default view.
const frameUnits = 8.0

// zoomBerth is how far SetScale may stray from the home scale in
// either direction.
const zoomBerth = 8.0

// Camera maps the scene plane (y up) onto the viewport (y down).
type Camera struct {
	// Camera center in world coordinates
	CenterX, CenterY float32

	// Magnification in pixels per world unit
	Scale float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Scale constraints
	MinScale, MaxScale float32

	homeX, homeY, homeScale float32
}

// New creates a camera centered on the origin, showing frameUnits world
// units vertically.
func New(viewportW, viewportH float32) *Camera {
	c := &Camera{ViewportW: viewportW, ViewportH: viewportH}
	c.home(0, 0, viewportH/frameUnits)
	return c
}

// FitRanges frames the padded spawn box of the given ranges, centered
// and fully visible. The ranges are the normalized ones carried by a
// built line set; the zoom limits follow the new scale.
func (c *Camera) FitRanges(x, y streamline.Range, padding float64) {
	minX := float32(x.Min - padding)
	maxX := float32(x.Max - x.Step + padding)
	minY := float32(y.Min - padding)
	maxY := float32(y.Max - y.Step + padding)

	scale := c.homeScale
	if maxX > minX && maxY > minY {
		scale = min(c.ViewportW/(maxX-minX), c.ViewportH/(maxY-minY))
	}
	c.home((minX+maxX)/2, (minY+maxY)/2, scale)
}

// home recenters the camera and anchors the zoom limits around the new scale.
func (c *Camera) home(x, y, scale float32) {
	c.homeX, c.homeY, c.homeScale = x, y, scale
	c.MinScale = scale / zoomBerth
	c.MaxScale = scale * zoomBerth
	c.Reset()
}

// Reset returns the camera to its home position and scale.
func (c *Camera) Reset() {
	c.CenterX = c.homeX
	c.CenterY = c.homeY
	c.Scale = c.homeScale
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.CenterX)*c.Scale
	sy = c.ViewportH/2 - (wy-c.CenterY)*c.Scale
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.CenterX + (sx-c.ViewportW/2)/c.Scale
	wy = c.CenterY - (sy-c.ViewportH/2)/c.Scale
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius in
// world units could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Scale) + radius
	halfH := c.ViewportH/(2*c.Scale) + radius
	return absf(wx-c.CenterX) <= halfW && absf(wy-c.CenterY) <= halfH
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Scale)
	halfH := c.ViewportH / (2 * c.Scale)
	return c.CenterX - halfW, c.CenterY - halfH, c.CenterX + halfW, c.CenterY + halfH
}

// Resize updates viewport dimensions, keeping the world center and scale.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.CenterX += dx / c.Scale
	c.CenterY -= dy / c.Scale
}

// SetScale sets the magnification, clamped to the zoom limits.
func (c *Camera) SetScale(scale float32) {
	c.Scale = clamp(scale, c.MinScale, c.MaxScale)
}

// ZoomBy multiplies the current scale by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetScale(c.Scale * factor)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
