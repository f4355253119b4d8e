package interact

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
)

func TestCameraRoundTrip(t *testing.T) {
	c := &Camera{OffsetX: 10, OffsetY: 20, Zoom: 4}
	sx, sy := c.WorldToScreen(3, 5)
	assert.Equal(t, float32(22), sx)
	assert.Equal(t, float32(40), sy)

	wx, wy := c.ScreenToWorld(sx, sy)
	assert.InDelta(t, 3, wx, 1e-6)
	assert.InDelta(t, 5, wy, 1e-6)
}

func TestCameraFit(t *testing.T) {
	c := NewCamera()
	c.Fit(10, 5, 220, 220, 10)
	assert.Equal(t, float32(20), c.Zoom)
	assert.Equal(t, float32(10), c.OffsetX)
	assert.Equal(t, float32(60), c.OffsetY)

	c.Pan(5, 5)
	c.Fit(10, 5, 220, 220, 10)
	assert.Equal(t, float32(15), c.OffsetX, "fit only applies once")

	c.Reset()
	c.Fit(10, 5, 220, 220, 10)
	assert.Equal(t, float32(10), c.OffsetX)
}

func TestCameraZoomKeepsAnchor(t *testing.T) {
	c := &Camera{Zoom: 10}
	before, _ := c.ScreenToWorld(50, 50)
	c.ZoomBy(2, 50, 50)
	after, _ := c.ScreenToWorld(50, 50)
	assert.Equal(t, float32(20), c.Zoom)
	assert.InDelta(t, before, after, 1e-6)

	c.ZoomBy(1000, 0, 0)
	assert.Equal(t, float32(MaxZoom), c.Zoom)
	c.ZoomBy(0, 0, 0)
	assert.Equal(t, float32(MinZoom), c.Zoom)
}

func TestCameraDragPans(t *testing.T) {
	c := &Camera{Zoom: 10}
	c.HandleEvent(pointer.Event{Kind: pointer.Press, Position: f32.Pt(0, 0)})
	c.HandleEvent(pointer.Event{Kind: pointer.Drag, Position: f32.Pt(7, -3)})
	c.HandleEvent(pointer.Event{Kind: pointer.Release, Position: f32.Pt(7, -3)})
	c.HandleEvent(pointer.Event{Kind: pointer.Drag, Position: f32.Pt(100, 100)})

	assert.Equal(t, float32(7), c.OffsetX)
	assert.Equal(t, float32(-3), c.OffsetY)
}
