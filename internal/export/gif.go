package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/phaseviz/internal/engine"
)

// GIFRecorder captures every Nth drawn frame from a raster source as a GIF frame.
type GIFRecorder struct {
	source func() *image.RGBA
	every  int
	limit  int
	delay  int

	frames []*image.Paletted
}

// NewGIFRecorder samples source on every Nth drawn frame, keeping at most limit frames.
// delay is in hundredths of a second.
func NewGIFRecorder(source func() *image.RGBA, every, limit, delay int) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	if delay < 1 {
		delay = 2
	}
	return &GIFRecorder{source: source, every: every, limit: limit, delay: delay}
}

func (r *GIFRecorder) OnFrame(info engine.FrameInfo) {
	if !info.Drawn || info.Frame%r.every != 0 {
		return
	}
	if r.limit > 0 && len(r.frames) >= r.limit {
		return
	}
	r.Capture()
}

// Capture adds the current raster unconditionally.
func (r *GIFRecorder) Capture() {
	src := r.source()
	if src == nil {
		return
	}
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	r.frames = append(r.frames, dst)
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return errors.New("no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}
