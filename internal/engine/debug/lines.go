// Package debug provides the viewer's debug overlays: the data bounds
// outline and a graticule in display coordinates.
package debug

import (
	gomath "math"

	"github.com/paulmach/orb"
)

// maxGridLines caps the lines per axis GridLines emits.
const maxGridLines = 512

// BoundsLines returns line-list vertices [x, y, z] outlining b at z=0.
func BoundsLines(b orb.Bound) []float32 {
	minX, minY := float32(b.Min.X()), float32(b.Min.Y())
	maxX, maxY := float32(b.Max.X()), float32(b.Max.Y())
	return []float32{
		minX, minY, 0, maxX, minY, 0,
		maxX, minY, 0, maxX, maxY, 0,
		maxX, maxY, 0, minX, maxY, 0,
		minX, maxY, 0, minX, minY, 0,
	}
}

// GridLines returns line-list vertices for lines every step units that
// cross b. Grid lines sit on multiples of step. Nothing is returned when
// step is not positive or the grid would be denser than maxGridLines.
func GridLines(b orb.Bound, step float64) []float32 {
	if step <= 0 {
		return nil
	}
	x0 := gomath.Ceil(b.Min.X()/step) * step
	y0 := gomath.Ceil(b.Min.Y()/step) * step
	nx := int(gomath.Floor((b.Max.X()-x0)/step)) + 1
	ny := int(gomath.Floor((b.Max.Y()-y0)/step)) + 1
	if nx > maxGridLines || ny > maxGridLines {
		return nil
	}

	minY, maxY := float32(b.Min.Y()), float32(b.Max.Y())
	minX, maxX := float32(b.Min.X()), float32(b.Max.X())
	var vertices []float32
	for i := 0; i < nx; i++ {
		x := float32(x0 + float64(i)*step)
		vertices = append(vertices, x, minY, 0, x, maxY, 0)
	}
	for i := 0; i < ny; i++ {
		y := float32(y0 + float64(i)*step)
		vertices = append(vertices, minX, y, 0, maxX, y, 0)
	}
	return vertices
}

// NiceStep returns a 1, 2 or 5 times power-of-ten step that gives roughly
// target lines across span.
func NiceStep(span float64, target int) float64 {
	if span <= 0 || target <= 0 {
		return 0
	}
	raw := span / float64(target)
	mag := gomath.Pow(10, gomath.Floor(gomath.Log10(raw)))
	switch r := raw / mag; {
	case r < 1.5:
		return mag
	case r < 3.5:
		return 2 * mag
	case r < 7.5:
		return 5 * mag
	}
	return 10 * mag
}
