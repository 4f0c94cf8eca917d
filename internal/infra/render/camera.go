package render

import (
	"github.com/paulmach/orb"
)

const (
	minZoom = 0.5
	maxZoom = 50000.0
)

// Camera is a 2D view transform from world space (lng/lat degrees) to
// screen space (pixels). The Y axis is flipped so north renders up.
type Camera struct {
	screenWidth  int
	screenHeight int

	// center point in world coordinates
	x, y float64
	zoom float64

	bound orb.Bound
}

// NewCamera creates a camera for a screen of the given pixel size.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		zoom:         1.0,
	}
}

// WorldToScreen transforms a world point to pixel coordinates.
func (c *Camera) WorldToScreen(p orb.Point) (float64, float64) {
	camX := (p[0] - c.x) * c.zoom
	camY := (c.y - p[1]) * c.zoom

	return camX + float64(c.screenWidth)/2, camY + float64(c.screenHeight)/2
}

// ScreenToWorld is the inverse transform, used for picking.
func (c *Camera) ScreenToWorld(screenX, screenY float64) orb.Point {
	camX := screenX - float64(c.screenWidth)/2
	camY := screenY - float64(c.screenHeight)/2

	return orb.Point{camX/c.zoom + c.x, c.y - camY/c.zoom}
}

// Pan moves the view by screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.x -= dx / c.zoom
	c.y += dy / c.zoom
	c.clampToBounds()
}

// ZoomAt zooms while keeping the world point under the given screen
// position stationary.
func (c *Camera) ZoomAt(screenX, screenY, zoomDelta float64) {
	before := c.ScreenToWorld(screenX, screenY)

	newZoom := clamp(c.zoom*(1.0+zoomDelta), minZoom, maxZoom)

	c.x = before[0] - (screenX-float64(c.screenWidth)/2)/newZoom
	c.y = before[1] + (screenY-float64(c.screenHeight)/2)/newZoom
	c.zoom = newZoom
	c.clampToBounds()
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the zoom level centered on the current position.
func (c *Camera) SetZoom(zoom float64) {
	c.zoom = clamp(zoom, minZoom, maxZoom)
}

// FitToBounds centers the camera on the bound and picks the largest
// zoom that keeps the whole bound visible, with a padding fraction.
func (c *Camera) FitToBounds(bound orb.Bound, padding float64) {
	c.bound = bound

	width := bound.Max[0] - bound.Min[0]
	height := bound.Max[1] - bound.Min[1]
	if width <= 0 || height <= 0 {
		return
	}

	zoomX := float64(c.screenWidth) * (1 - padding) / width
	zoomY := float64(c.screenHeight) * (1 - padding) / height
	c.zoom = clamp(min(zoomX, zoomY), minZoom, maxZoom)

	center := bound.Center()
	c.x = center[0]
	c.y = center[1]
}

// VisibleBounds returns the world area currently on screen.
func (c *Camera) VisibleBounds() orb.Bound {
	halfWidth := float64(c.screenWidth) / c.zoom / 2
	halfHeight := float64(c.screenHeight) / c.zoom / 2

	return orb.Bound{
		Min: orb.Point{c.x - halfWidth, c.y - halfHeight},
		Max: orb.Point{c.x + halfWidth, c.y + halfHeight},
	}
}

// OnScreen reports whether a world point is inside the visible area.
func (c *Camera) OnScreen(p orb.Point) bool {
	return c.VisibleBounds().Contains(p)
}

func (c *Camera) clampToBounds() {
	if c.bound.IsEmpty() {
		return
	}

	halfWidth := float64(c.screenWidth) / c.zoom / 2
	halfHeight := float64(c.screenHeight) / c.zoom / 2

	c.x = clamp(c.x, c.bound.Min[0]+halfWidth, c.bound.Max[0]-halfWidth)
	c.y = clamp(c.y, c.bound.Min[1]+halfHeight, c.bound.Max[1]-halfHeight)
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
