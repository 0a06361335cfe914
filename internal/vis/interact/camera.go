// Package interact handles viewer interaction: camera pan and zoom.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

// Camera manages the view transform between world (cell) coordinates and
// screen pixels.
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32 // Pixels per world unit scale factor

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera with default settings.
func NewCamera() *Camera {
	return &Camera{OffsetX: 40, OffsetY: 40, Zoom: 1.0}
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.OffsetX = 40
	c.OffsetY = 40
	c.Zoom = 1.0
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent processes pointer events: drag pans, scroll zooms centered on
// the pointer.
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		c.dragging = true
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		worldX, worldY := c.ScreenToWorld(ev.Position.X, ev.Position.Y)
		if ev.Scroll.Y > 0 {
			c.Zoom /= 1.1
		} else {
			c.Zoom *= 1.1
		}
		c.clampZoom()
		// Keep the world point under the pointer fixed.
		newX, newY := c.WorldToScreen(worldX, worldY)
		c.OffsetX += ev.Position.X - newX
		c.OffsetY += ev.Position.Y - newY
	}
}

// FitBounds adjusts the camera so the world rectangle fills the screen with
// a margin.
func (c *Camera) FitBounds(worldW, worldH float64, screenW, screenH, margin float32) {
	if worldW <= 0 || worldH <= 0 {
		return
	}
	zoomX := (screenW - 2*margin) / float32(worldW)
	zoomY := (screenH - 2*margin) / float32(worldH)
	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	c.clampZoom()
	c.OffsetX = screenW/2 - float32(worldW/2)*c.Zoom
	c.OffsetY = screenH/2 - float32(worldH/2)*c.Zoom
}

func (c *Camera) clampZoom() {
	if c.Zoom < 0.1 {
		c.Zoom = 0.1
	}
	if c.Zoom > 200 {
		c.Zoom = 200
	}
}
