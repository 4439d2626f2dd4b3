package render

import (
	"image/color"
	"math"
)

// Canvas is a drawing target in logical pixels. Alpha values are in [0,1].
type Canvas interface {
	// Clear paints the whole canvas opaque.
	Clear(c color.RGBA)
	// Fill paints the whole canvas with a translucent layer.
	Fill(c color.RGBA, alpha float64)
	Circle(x, y, r float64, c color.RGBA, alpha float64)
	Ring(x, y, r, width float64, c color.RGBA, alpha float64)
	// Glow fills a disk of radius outer with a radial gradient starting at radius inner.
	Glow(x, y, inner, outer float64, stops []Stop)
	// Text draws s centred on (x, y).
	Text(s string, x, y, size float64, bold bool, c color.RGBA, alpha float64)
}

// Stop is a radial gradient colour stop.
type Stop struct {
	Offset float64
	Color  color.RGBA
	Alpha  float64
}

// NRGBA combines c with alpha into a non-premultiplied colour.
func NRGBA(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alphaByte(alpha)}
}

func alphaByte(a float64) uint8 {
	if a <= 0 || math.IsNaN(a) {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
