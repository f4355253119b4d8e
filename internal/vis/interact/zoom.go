// Package interact handles pan and zoom of the room view.
package interact

import "gioui.org/io/pointer"

// Zoom limits in pixels per cell.
const (
	MinZoom = 2
	MaxZoom = 96
)

// Camera maps room coordinates (cells) to screen pixels.
type Camera struct {
	OffsetX float32 // Screen position of the room origin
	OffsetY float32
	Zoom    float32 // Pixels per cell

	fitted   bool
	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera returns a camera that fits the room on the first frame.
func NewCamera() *Camera {
	return &Camera{Zoom: 12}
}

// Reset makes the next Fit call refit the view.
func (c *Camera) Reset() {
	c.fitted = false
}

func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent pans on drag and zooms around the pointer on scroll.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		c.dragging = true
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		switch {
		case ev.Scroll.Y > 0:
			c.ZoomBy(1/1.1, ev.Position.X, ev.Position.Y)
		case ev.Scroll.Y < 0:
			c.ZoomBy(1.1, ev.Position.X, ev.Position.Y)
		}
	}
}

// Pan moves the view by a screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy scales the view, keeping the room point under (centerX, centerY) fixed.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)
	c.Zoom = clampZoom(c.Zoom * factor)

	newX, newY := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - newX
	c.OffsetY += centerY - newY
}

// Fit centres a width x height room in the screen once, until Reset.
func (c *Camera) Fit(width, height int, screenWidth, screenHeight, margin float32) {
	if c.fitted || width <= 0 || height <= 0 || screenWidth <= 0 || screenHeight <= 0 {
		return
	}
	c.fitted = true

	zx := (screenWidth - 2*margin) / float32(width)
	zy := (screenHeight - 2*margin) / float32(height)
	c.Zoom = clampZoom(min(zx, zy))
	c.OffsetX = screenWidth/2 - float32(width)/2*c.Zoom
	c.OffsetY = screenHeight/2 - float32(height)/2*c.Zoom
}

func clampZoom(z float32) float32 {
	return min(max(z, MinZoom), MaxZoom)
}
