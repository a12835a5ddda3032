// Package camera provides the orthographic map camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/geoline/pkg/math"
)

// MapCamera looks straight down at the display plane. Center and
// Resolution are in display units (metres for web mercator).
type MapCamera struct {
	CenterX, CenterY float64

	// Resolution is display units per pixel.
	Resolution float64

	Width, Height int

	// Constraints
	MinResolution float64
	MaxResolution float64

	// ZoomSensitivity is the resolution change per wheel step.
	ZoomSensitivity float64
}

// NewMapCamera returns a camera showing the whole web mercator world in a
// viewport of the given size.
func NewMapCamera(width, height int) *MapCamera {
	c := &MapCamera{
		Width:           width,
		Height:          height,
		MinResolution:   0.01,
		MaxResolution:   1e6,
		ZoomSensitivity: 0.1,
	}
	const world = 2 * 20037508.342789244
	c.FitToBounds(-world/2, -world/2, world/2, world/2, 0)
	return c
}

// Resize changes the viewport size, keeping center and resolution.
func (c *MapCamera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// ViewMatrix moves the center to the origin.
func (c *MapCamera) ViewMatrix() math.Mat4 {
	return math.Translate(float32(-c.CenterX), float32(-c.CenterY), 0)
}

// ProjectionMatrix maps the visible extent around the origin to NDC.
func (c *MapCamera) ProjectionMatrix() math.Mat4 {
	hw := float32(c.Resolution * float64(c.Width) / 2)
	hh := float32(c.Resolution * float64(c.Height) / 2)
	if hw == 0 || hh == 0 {
		return math.Identity()
	}
	return math.Ortho(-hw, hw, -hh, hh, -1, 1)
}

// HandleDrag pans by a mouse delta in pixels. Screen Y grows downwards.
func (c *MapCamera) HandleDrag(deltaX, deltaY float32) {
	c.CenterX -= float64(deltaX) * c.Resolution
	c.CenterY += float64(deltaY) * c.Resolution
}

// HandleZoom zooms about the center. Positive delta zooms in.
func (c *MapCamera) HandleZoom(delta float32) {
	c.Resolution -= float64(delta) * c.Resolution * c.ZoomSensitivity
	c.clamp()
}

// ZoomAt zooms while keeping the display point under pixel (px, py) fixed.
func (c *MapCamera) ZoomAt(delta float32, px, py int) {
	x, y := c.ScreenToDisplay(px, py)
	c.HandleZoom(delta)
	nx, ny := c.ScreenToDisplay(px, py)
	c.CenterX += x - nx
	c.CenterY += y - ny
}

// ScreenToDisplay converts a pixel position (origin top left) to display
// coordinates.
func (c *MapCamera) ScreenToDisplay(px, py int) (float64, float64) {
	x := c.CenterX + (float64(px)-float64(c.Width)/2)*c.Resolution
	y := c.CenterY - (float64(py)-float64(c.Height)/2)*c.Resolution
	return x, y
}

// FitToBounds centers the bounds and picks the resolution that shows all
// of them with padding pixels to spare on every side.
func (c *MapCamera) FitToBounds(minX, minY, maxX, maxY float64, padding int) {
	c.CenterX = (minX + maxX) / 2
	c.CenterY = (minY + maxY) / 2

	w := float64(c.Width - 2*padding)
	h := float64(c.Height - 2*padding)
	if w <= 0 || h <= 0 {
		w, h = float64(c.Width), float64(c.Height)
	}
	if w <= 0 || h <= 0 {
		return
	}
	c.Resolution = gomath.Max((maxX-minX)/w, (maxY-minY)/h)
	if c.Resolution == 0 {
		c.Resolution = c.MinResolution
	}
	c.clamp()
}

func (c *MapCamera) clamp() {
	if c.Resolution < c.MinResolution {
		c.Resolution = c.MinResolution
	}
	if c.Resolution > c.MaxResolution {
		c.Resolution = c.MaxResolution
	}
}
