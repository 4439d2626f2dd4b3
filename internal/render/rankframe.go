package render

import (
	"image/color"
	"math"

	"github.com/san-kum/phaseviz/internal/ranking"
)

// RankStyle holds the palette of the ranking animation.
type RankStyle struct {
	Accent     color.RGBA
	Background color.RGBA
	Pending    color.RGBA
	Survivor   color.RGBA
	Eliminated color.RGBA
	Text       color.RGBA
}

func DefaultRankStyle() RankStyle {
	return RankStyle{
		Accent:     color.RGBA{R: 0, G: 212, B: 170, A: 255},
		Background: color.RGBA{R: 10, G: 10, B: 10, A: 255},
		Pending:    color.RGBA{R: 70, G: 70, B: 70, A: 255},
		Survivor:   color.RGBA{R: 100, G: 100, B: 100, A: 255},
		Eliminated: color.RGBA{R: 40, G: 40, B: 40, A: 255},
		Text:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// RankLayout places a square dot grid centred in the viewport.
type RankLayout struct {
	OX, OY float64
	Size   float64
	Gap    float64
	Dot    float64
	Cols   int
}

func NewRankLayout(vp Viewport, cols int) RankLayout {
	if cols < 1 {
		cols = 1
	}
	size := math.Min(vp.Width, vp.Height)
	if size < 0 {
		size = 0
	}
	gap := size / float64(cols)
	return RankLayout{
		OX:   (vp.Width - size) / 2,
		OY:   (vp.Height - size) / 2,
		Size: size,
		Gap:  gap,
		Dot:  math.Max(1, gap*0.6),
		Cols: cols,
	}
}

// Center returns the pixel centre of dot i.
func (l RankLayout) Center(i int) (float64, float64) {
	col := i % l.Cols
	row := i / l.Cols
	return l.OX + float64(col)*l.Gap + l.Gap/2, l.OY + float64(row)*l.Gap + l.Gap/2
}

// IndexAt returns the dot under (x, y), or -1.
func (l RankLayout) IndexAt(x, y float64, total int) int {
	if l.Gap <= 0 {
		return -1
	}
	fx := (x - l.OX) / l.Gap
	fy := (y - l.OY) / l.Gap
	if fx < 0 || fy < 0 || fx >= float64(l.Cols) || fy >= float64(l.Cols) {
		return -1
	}
	i := int(fy)*l.Cols + int(fx)
	if i >= total {
		return -1
	}
	return i
}

// RankPainter composes frames for the ranking variant.
type RankPainter struct {
	Style RankStyle
}

func NewRankPainter(style RankStyle) *RankPainter {
	return &RankPainter{Style: style}
}

// Frame draws the dot grid and, once zooming, the disk with statistics. highlights are
// survivor indices selected by the user. It reports false when the viewport is empty.
func (rp *RankPainter) Frame(c Canvas, vp Viewport, a *ranking.Animation, stats ranking.Stats, highlights []int) bool {
	if vp.Empty() || c == nil || a == nil || a.Sel == nil {
		return false
	}
	st := rp.Style
	sel := a.Sel
	l := NewRankLayout(vp, sel.Cols)

	c.Clear(st.Background)

	showMarkedGlow := a.Zoom == 0
	for i := 0; i < sel.Total; i++ {
		x, y := l.Center(i)
		switch {
		case sel.IsEliminated(i):
			c.Circle(x, y, l.Dot*0.2, st.Eliminated, 0.15)
		case i == sel.Marked && showMarkedGlow && a.Elimination > 0.8:
			c.Circle(x, y, l.Dot*2, st.Accent, (a.Elimination-0.8)*5)
			c.Circle(x, y, l.Dot*1.2, st.Accent, 1)
		case sel.IsSurvivor(i):
			col := st.Survivor
			if a.Elimination > 0.7 {
				col = st.Accent
			}
			c.Circle(x, y, l.Dot, col, 1)
		default:
			c.Circle(x, y, l.Dot, st.Pending, 1)
		}
	}

	for _, i := range highlights {
		if !sel.IsSurvivor(i) {
			continue
		}
		x, y := l.Center(i)
		c.Ring(x, y, l.Dot*1.8, 1.5, st.Text, 0.9)
	}

	if a.Zoom > 0 {
		rp.drawZoom(c, vp, l, a, stats)
	}
	return true
}

func (rp *RankPainter) drawZoom(c Canvas, vp Viewport, l RankLayout, a *ranking.Animation, stats ranking.Stats) {
	st := rp.Style
	cx, cy := vp.Width/2, vp.Height/2
	size := l.Size

	maxR := size * 0.38
	r := l.Dot + (maxR-l.Dot)*ranking.EaseOutCubic(a.Zoom)

	c.Glow(cx, cy, r*0.3, r*1.5, []Stop{
		{Offset: 0, Color: st.Accent, Alpha: 0.4},
		{Offset: 0.6, Color: st.Accent, Alpha: 0.15},
		{Offset: 1, Color: st.Accent, Alpha: 0},
	})
	c.Circle(cx, cy, r, st.Background, 0.85)

	pulse := 1 + math.Sin(a.Pulse)*0.02
	c.Ring(cx, cy, r*pulse, 2+a.Zoom*2, st.Accent, 1)

	if a.Zoom <= 0.5 {
		return
	}
	t := (a.Zoom - 0.5) * 2
	c.Text(stats.Headline, cx, cy-size*0.08, size*0.12, true, st.Accent, t)
	c.Text(stats.Detail, cx, cy+size*0.06, size*0.06, false, st.Text, t*0.9)
	if stats.Label != "" {
		c.Text(stats.Label, cx, cy+size*0.16, size*0.045, false, st.Accent, t*0.7)
	}
}

// Settled jumps the animation to its end and draws that frame.
func (rp *RankPainter) Settled(c Canvas, vp Viewport, a *ranking.Animation, stats ranking.Stats, highlights []int) bool {
	if a == nil || vp.Empty() {
		return false
	}
	a.Finish()
	return rp.Frame(c, vp, a, stats, highlights)
}
