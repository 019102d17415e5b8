package plot

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an opaque 48-bit RGB color. It implements color.Color.
type Color struct {
	R, G, B uint16
}

var (
	Black = Color{}
	White = Color{R: 0xffff, G: 0xffff, B: 0xffff}
)

// RGB8 returns a Color from 8-bit components.
func RGB8(r, g, b uint8) Color {
	return Color{R: uint16(r) * 0x101, G: uint16(g) * 0x101, B: uint16(b) * 0x101}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(c.R), uint32(c.G), uint32(c.B), 0xffff
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R>>8, c.G>>8, c.B>>8)
}

// Gray returns the luminance of c as a gray color.
func (c Color) Gray() Color {
	l := 0.212671*float64(c.R) + 0.715160*float64(c.G) + 0.072169*float64(c.B)
	v := uint16(l + 0.5)
	return Color{R: v, G: v, B: v}
}

// ParseColor accepts an X11/SVG color name ("white", "navy") or a
// hex triple "#rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("plot: color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return RGB8(r, g, b), nil
	}
	name := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if rgba, ok := colornames.Map[name]; ok {
		return RGB8(rgba.R, rgba.G, rgba.B), nil
	}
	return Color{}, fmt.Errorf("plot: unknown color %q", s)
}
