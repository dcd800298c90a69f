// Package camera provides the viewport that follows the actor through the
// world and translates world rectangles into viewport coordinates.
package camera

import "github.com/vovakirdan/tui-platformer/internal/core"

// Camera is a viewport rectangle in world units, kept inside Bounds.
type Camera struct {
	X, Y   int
	W, H   int
	Bounds core.Rect
}

// New creates a camera at (x, y), clamped to bounds.
func New(x, y, w, h int, bounds core.Rect) *Camera {
	c := &Camera{X: x, Y: y, W: core.Max(w, 0), H: core.Max(h, 0), Bounds: bounds}
	c.clamp()
	return c
}

// CenterOn moves the camera so the target's center sits at the camera's
// center, then clamps each axis independently to Bounds.
func (c *Camera) CenterOn(target core.Rect) {
	cx, cy := target.Center()
	c.X = cx - c.W/2
	c.Y = cy - c.H/2
	c.clamp()
}

// Resize changes the viewport size and re-applies the clamp.
func (c *Camera) Resize(w, h int) {
	c.W = core.Max(w, 0)
	c.H = core.Max(h, 0)
	c.clamp()
}

// WorldRect returns the visible area in world coordinates.
func (c *Camera) WorldRect() core.Rect {
	return core.NewRect(c.X, c.Y, c.W, c.H)
}

// ToViewport translates a world rectangle into camera-relative coordinates.
func (c *Camera) ToViewport(r core.Rect) core.Rect {
	return r.Translate(-c.X, -c.Y)
}

// ToViewportPoint translates a world point into camera-relative coordinates.
func (c *Camera) ToViewportPoint(x, y int) (int, int) {
	return x - c.X, y - c.Y
}

func (c *Camera) clamp() {
	c.X = clampAxis(c.X, c.W, c.Bounds.X, c.Bounds.W)
	c.Y = clampAxis(c.Y, c.H, c.Bounds.Y, c.Bounds.H)
}

// clampAxis keeps [pos, pos+size) inside [origin, origin+extent).
// When the extent is smaller than the viewport the axis pins to origin.
func clampAxis(pos, size, origin, extent int) int {
	if extent < size {
		return origin
	}
	if pos < origin {
		return origin
	}
	if pos+size > origin+extent {
		return origin + extent - size
	}
	return pos
}
