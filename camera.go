package main

import "math"

// Camera keeps a world point centered on screen, clamped to the world.
type Camera struct {
	PosX float64
	PosY float64

	screenW, screenH float64
	zoom             float64
	// smoothing factor (0..1). higher -> faster follow
	smooth         float64
	worldW, worldH float64
}

func NewCamera(screenW, screenH, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		PosX:    screenW / 2,
		PosY:    screenH / 2,
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
	}
}

// SetWorldBounds sets the world size used for clamping; zero is unbounded.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - c.screenW/c.zoom/2, c.PosY - c.screenH/c.zoom/2
}

// WorldToScreen maps a world point into screen pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	vx, vy := c.ViewTopLeft()
	return (x - vx) * c.zoom, (y - vy) * c.zoom
}

// Update eases toward the target. Call from the fixed-rate Update loop.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX, c.PosY = targetX, targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}
	c.settle()
}

// SnapTo jumps to the target, e.g. right after a level load.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX, c.PosY = x, y
	c.settle()
}

func (c *Camera) settle() {
	// snap to the 1/zoom grid so texels land on whole pixels
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := c.screenW / c.zoom / 2
	halfH := c.screenH / c.zoom / 2
	c.PosX = clampAxis(c.PosX, halfW, c.worldW)
	c.PosY = clampAxis(c.PosY, halfH, c.worldH)
}

func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world-half < half {
		// world smaller than view: center on world
		return world / 2
	}
	return math.Max(half, math.Min(pos, world-half))
}
