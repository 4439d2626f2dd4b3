package render

import (
	"image/color"
	"math"

	"github.com/san-kum/phaseviz/internal/dynamo"
	"github.com/san-kum/phaseviz/internal/population"
)

const primaryAlpha = 0.8

// MapStyle controls how a standard-map population is drawn.
type MapStyle struct {
	Radius     float64
	Primary    color.RGBA
	Highlight  color.RGBA
	Background color.RGBA

	// FadeAlpha is the opacity of the background layer painted over the previous frame.
	// 1 clears the canvas every frame.
	FadeAlpha float64

	// Hue colours grid primaries by slot index instead of Primary.
	Hue bool
}

// MapPainter composes frames for the map variant.
type MapPainter struct {
	Style MapStyle

	palette []color.RGBA
}

func NewMapPainter(style MapStyle) *MapPainter {
	return &MapPainter{Style: style}
}

// colorFor returns the fill for the i-th primary.
func (mp *MapPainter) colorFor(i int, e *population.Entity, gridCount int) color.RGBA {
	if !mp.Style.Hue || e.Anchored || i >= gridCount {
		return mp.Style.Primary
	}
	n := population.GridSide(gridCount)
	if len(mp.palette) != n*n {
		mp.palette = HuePalette(n * n)
	}
	return mp.palette[i]
}

func gridCount(primary []population.Entity) int {
	n := 0
	for i := range primary {
		if !primary[i].Anchored {
			n++
		}
	}
	return n
}

// Frame draws one animated frame. It reports false when the viewport is empty.
func (mp *MapPainter) Frame(c Canvas, vp Viewport, pop *population.Population) bool {
	if vp.Empty() || c == nil {
		return false
	}
	if mp.Style.FadeAlpha >= 1 {
		c.Clear(mp.Style.Background)
	} else {
		c.Fill(mp.Style.Background, mp.Style.FadeAlpha)
	}

	primary := pop.Primary()
	grid := gridCount(primary)
	for i := range primary {
		e := &primary[i]
		x, y := vp.ToPixel(e.Pos)
		c.Circle(x, y, mp.Style.Radius, mp.colorFor(i, e, grid), primaryAlpha)
	}

	tracers := pop.Tracers()
	for i := range tracers {
		mp.drawTracer(c, vp, &tracers[i])
	}
	return true
}

func (mp *MapPainter) drawTracer(c Canvas, vp Viewport, t *population.Entity) {
	life := 1.0
	if t.MaxAge > 0 {
		// fade out over the last 60 steps
		life = clamp01(float64(t.MaxAge-t.Age) / 60)
	}
	if life <= 0 {
		return
	}
	r := mp.Style.Radius
	hl := mp.Style.Highlight

	pts := t.Trail.Points()
	for j, pt := range pts {
		x, y := vp.ToPixel(pt)
		a := 0.6 * float64(j+1) / float64(len(pts)) * life
		c.Circle(x, y, r*0.9, hl, a)
	}

	x, y := vp.ToPixel(t.Pos)
	c.Glow(x, y, 0, r*6, []Stop{
		{Offset: 0, Color: hl, Alpha: 0.5 * life},
		{Offset: 0.5, Color: hl, Alpha: 0.15 * life},
		{Offset: 1, Color: hl, Alpha: 0},
	})
	c.Circle(x, y, r*1.6, hl, life)
	c.Circle(x, y, r*0.7, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.9*life)
}

// Static draws every primary's orbit over iterations steps on a clean background, then each
// tracer's orbit in the highlight colour with its glow and core. The population itself is not
// advanced.
func (mp *MapPainter) Static(c Canvas, vp Viewport, pop *population.Population, m dynamo.Map, iterations int) bool {
	if vp.Empty() || c == nil {
		return false
	}
	c.Clear(mp.Style.Background)
	primary := pop.Primary()
	grid := gridCount(primary)
	for i := range primary {
		e := &primary[i]
		col := mp.colorFor(i, e, grid)
		x, y := vp.ToPixel(e.Pos)
		c.Circle(x, y, mp.Style.Radius, col, primaryAlpha)
		for _, pt := range dynamo.Iterate(m, e.Pos, iterations) {
			x, y := vp.ToPixel(pt)
			c.Circle(x, y, mp.Style.Radius, col, primaryAlpha)
		}
	}

	hl := mp.Style.Highlight
	r := mp.Style.Radius
	tracers := pop.Tracers()
	for i := range tracers {
		pos := tracers[i].Pos
		for _, pt := range dynamo.Iterate(m, pos, iterations) {
			x, y := vp.ToPixel(pt)
			c.Circle(x, y, r*0.9, hl, 0.6)
		}
		x, y := vp.ToPixel(pos)
		c.Glow(x, y, 0, r*6, []Stop{
			{Offset: 0, Color: hl, Alpha: 0.5},
			{Offset: 0.5, Color: hl, Alpha: 0.15},
			{Offset: 1, Color: hl, Alpha: 0},
		})
		c.Circle(x, y, r*1.6, hl, 1)
		c.Circle(x, y, r*0.7, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.9)
	}
	return true
}

// Repaint redraws the stored trail history of every primary on a clean background. Hosts
// call it after the backing surface is recreated so accumulated structure survives.
func (mp *MapPainter) Repaint(c Canvas, vp Viewport, pop *population.Population) bool {
	if vp.Empty() || c == nil {
		return false
	}
	c.Clear(mp.Style.Background)
	primary := pop.Primary()
	grid := gridCount(primary)
	for i := range primary {
		e := &primary[i]
		col := mp.colorFor(i, e, grid)
		pts := e.Trail.Points()
		for j, pt := range pts {
			x, y := vp.ToPixel(pt)
			// older points have already been faded on screen
			a := primaryAlpha * math.Pow(1-mp.fade(), float64(len(pts)-j))
			c.Circle(x, y, mp.Style.Radius, col, a)
		}
		x, y := vp.ToPixel(e.Pos)
		c.Circle(x, y, mp.Style.Radius, col, primaryAlpha)
	}
	return true
}

func (mp *MapPainter) fade() float64 {
	return clamp01(mp.Style.FadeAlpha)
}
