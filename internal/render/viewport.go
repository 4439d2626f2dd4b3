package render

import (
	"math"

	"github.com/san-kum/phaseviz/internal/dynamo"
)

// Viewport is the logical size of the drawing area and its device pixel ratio.
type Viewport struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

func NewViewport(w, h, ratio float64) Viewport {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	return Viewport{Width: math.Max(0, w), Height: math.Max(0, h), PixelRatio: ratio}
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return !(v.Width > 0) || !(v.Height > 0)
}

// Backing returns the physical pixel dimensions of a surface for v.
func (v Viewport) Backing() (int, int) {
	if v.Empty() {
		return 0, 0
	}
	r := v.PixelRatio
	if r <= 0 {
		r = 1
	}
	return int(math.Round(v.Width * r)), int(math.Round(v.Height * r))
}

// ToPixel maps a phase-space point to logical pixels.
func (v Viewport) ToPixel(pt dynamo.Point) (float64, float64) {
	return pt.Q * v.Width, (1 - pt.P) * v.Height
}

// FromPixel is the inverse of ToPixel. The result is wrapped onto the unit torus.
func (v Viewport) FromPixel(x, y float64) dynamo.Point {
	if v.Empty() {
		return dynamo.Point{}
	}
	return dynamo.Point{Q: x / v.Width, P: 1 - y/v.Height}.Wrap()
}
