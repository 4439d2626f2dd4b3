package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
)

func loadFonts() {
	fontOnce.Do(func() {
		// the embedded Go fonts always parse
		regularFont, _ = truetype.Parse(goregular.TTF)
		boldFont, _ = truetype.Parse(gobold.TTF)
	})
}

type faceKey struct {
	size int
	bold bool
}

// ImageCanvas is a Canvas over an RGBA raster. The context is scaled by the pixel ratio
// once, at allocation.
type ImageCanvas struct {
	vp    Viewport
	dc    *gg.Context
	faces map[faceKey]font.Face
}

// NewImageCanvas allocates a raster for vp. A zero-area viewport yields a canvas that
// ignores every draw call.
func NewImageCanvas(vp Viewport) *ImageCanvas {
	c := &ImageCanvas{vp: vp, faces: make(map[faceKey]font.Face)}
	w, h := vp.Backing()
	if w <= 0 || h <= 0 {
		return c
	}
	c.dc = gg.NewContext(w, h)
	c.dc.Scale(vp.PixelRatio, vp.PixelRatio)
	return c
}

func (c *ImageCanvas) Viewport() Viewport { return c.vp }

// Image returns the backing raster, or nil for an empty canvas.
func (c *ImageCanvas) Image() *image.RGBA {
	if c.dc == nil {
		return nil
	}
	if img, ok := c.dc.Image().(*image.RGBA); ok {
		return img
	}
	return nil
}

func (c *ImageCanvas) Clear(col color.RGBA) {
	if c.dc == nil {
		return
	}
	c.dc.SetColor(color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255})
	c.dc.DrawRectangle(0, 0, c.vp.Width, c.vp.Height)
	c.dc.Fill()
}

func (c *ImageCanvas) Fill(col color.RGBA, alpha float64) {
	if c.dc == nil || alpha <= 0 {
		return
	}
	c.dc.SetColor(NRGBA(col, alpha))
	c.dc.DrawRectangle(0, 0, c.vp.Width, c.vp.Height)
	c.dc.Fill()
}

func (c *ImageCanvas) Circle(x, y, r float64, col color.RGBA, alpha float64) {
	if c.dc == nil || r <= 0 || alpha <= 0 {
		return
	}
	c.dc.SetColor(NRGBA(col, alpha))
	c.dc.DrawCircle(x, y, r)
	c.dc.Fill()
}

func (c *ImageCanvas) Ring(x, y, r, width float64, col color.RGBA, alpha float64) {
	if c.dc == nil || r <= 0 || alpha <= 0 {
		return
	}
	c.dc.SetColor(NRGBA(col, alpha))
	c.dc.SetLineWidth(width)
	c.dc.DrawCircle(x, y, r)
	c.dc.Stroke()
}

func (c *ImageCanvas) Glow(x, y, inner, outer float64, stops []Stop) {
	if c.dc == nil || outer <= 0 || len(stops) == 0 {
		return
	}
	g := gg.NewRadialGradient(x, y, math.Max(0, inner), x, y, outer)
	for _, s := range stops {
		g.AddColorStop(clamp01(s.Offset), NRGBA(s.Color, s.Alpha))
	}
	c.dc.SetFillStyle(g)
	c.dc.DrawCircle(x, y, outer)
	c.dc.Fill()
}

func (c *ImageCanvas) Text(s string, x, y, size float64, bold bool, col color.RGBA, alpha float64) {
	if c.dc == nil || s == "" || size <= 0 || alpha <= 0 {
		return
	}
	c.dc.SetFontFace(c.face(size, bold))
	c.dc.SetColor(NRGBA(col, alpha))
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (c *ImageCanvas) face(size float64, bold bool) font.Face {
	key := faceKey{size: int(math.Round(size)), bold: bold}
	if key.size < 1 {
		key.size = 1
	}
	if f, ok := c.faces[key]; ok {
		return f
	}
	loadFonts()
	ttf := regularFont
	if bold {
		ttf = boldFont
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: float64(key.size)})
	c.faces[key] = f
	return f
}

// ImageSurface owns an ImageCanvas and recreates it whenever the host resizes.
type ImageSurface struct {
	mu     sync.Mutex
	width  float64
	height float64
	ratio  float64
	canvas *ImageCanvas
}

func NewImageSurface(w, h, ratio float64) *ImageSurface {
	if ratio <= 0 {
		ratio = 1
	}
	return &ImageSurface{width: w, height: h, ratio: ratio}
}

// SetSize records a new logical size. The engine picks it up on its next resize.
func (s *ImageSurface) SetSize(w, h float64) {
	s.mu.Lock()
	s.width, s.height = w, h
	s.mu.Unlock()
}

func (s *ImageSurface) Size() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *ImageSurface) PixelRatio() float64 { return s.ratio }

// Allocate replaces the backing raster with one sized for vp.
func (s *ImageSurface) Allocate(vp Viewport) Canvas {
	c := NewImageCanvas(vp)
	s.mu.Lock()
	s.canvas = c
	s.mu.Unlock()
	return c
}

// Image returns the current raster, or nil before allocation or while empty.
func (s *ImageSurface) Image() *image.RGBA {
	s.mu.Lock()
	c := s.canvas
	s.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Image()
}
