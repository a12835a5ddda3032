package geo

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB stroke color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
	"grey":   "#808080",
}

// ParseColor parses "#rgb", "#rrggbb" or a basic CSS color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

// Float32 returns the channels as a float32 triple for vertex buffers.
func (c Color) Float32() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}
