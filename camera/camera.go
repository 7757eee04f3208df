// Package camera maps between the field's domain and a screen viewport.
package camera

// Camera controls the viewport into the bounded field domain.
// At zoom 1 the whole domain fits the viewport; zooming in shows a part of
// it and panning is clamped so the view never leaves the domain.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level on top of the fit scale (1.0 = whole domain visible)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World dimensions (the field domain)
	WorldW, WorldH float64

	// Stretch scales the axes independently to fill the viewport instead of
	// letterboxing. Terminal cells are not square, so the terminal viewer
	// uses it.
	Stretch bool

	// Zoom constraints
	MinZoom, MaxZoom float64

	scaleX, scaleY float64
}

// New creates a camera that fits the whole world into the viewport with a
// uniform scale, centred with letterbox margins.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		X:       worldW / 2,
		Y:       worldH / 2,
		Zoom:    1.0,
		WorldW:  worldW,
		WorldH:  worldH,
		MinZoom: 1.0,
		MaxZoom: 8.0,
	}
	c.Resize(viewportW, viewportH)
	return c
}

// NewStretched creates a camera that fills the viewport by scaling each
// axis on its own.
func NewStretched(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := New(viewportW, viewportH, worldW, worldH)
	c.Stretch = true
	c.fit()
	return c
}

// Scale returns the screen units per world unit along each axis.
func (c *Camera) Scale() (sx, sy float64) {
	return c.scaleX * c.Zoom, c.scaleY * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	kx, ky := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*kx
	sy = c.ViewportH/2 + (wy-c.Y)*ky
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
// Points in the letterbox margins map outside the world.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	kx, ky := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/kx
	wy = c.Y + (sy-c.ViewportH/2)/ky
	return wx, wy
}

// InWorld reports whether a world point lies inside the domain.
func (c *Camera) InWorld(wx, wy float64) bool {
	return wx >= 0 && wx <= c.WorldW && wy >= 0 && wy <= c.WorldH
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions and refits the world.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}

// fit recomputes the zoom-1 scale and re-clamps the position.
func (c *Camera) fit() {
	c.scaleX = c.ViewportW / c.WorldW
	c.scaleY = c.ViewportH / c.WorldH
	if !c.Stretch {
		s := min(c.scaleX, c.scaleY)
		c.scaleX, c.scaleY = s, s
	}
	c.clampPosition()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	kx, ky := c.Scale()
	c.X += dx / kx
	c.Y += dy / ky
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	kx, ky := c.Scale()
	halfW := c.ViewportW / (2 * kx)
	halfH := c.ViewportH / (2 * ky)

	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampPosition keeps the view inside the world. An axis that shows the
// whole world stays centred on it.
func (c *Camera) clampPosition() {
	kx, ky := c.Scale()
	c.X = clampAxis(c.X, c.ViewportW/(2*kx), c.WorldW)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*ky), c.WorldH)
}

func clampAxis(pos, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(pos, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
