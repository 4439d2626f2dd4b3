package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HuePalette spreads n colours around the hue circle at 70% saturation and 60% lightness.
func HuePalette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		h := float64(i) * 360 / float64(n)
		r, g, b := colorful.Hsl(h, 0.7, 0.6).RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// ParseHex reads "#rrggbb" or "#rgb". ok is false for anything else.
func ParseHex(s string) (color.RGBA, bool) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}
