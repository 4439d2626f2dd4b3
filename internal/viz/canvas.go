package viz

import (
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/phaseviz/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBlank = 0x2800
	// LitThreshold is the intensity above which a sub-pixel shows as a dot.
	LitThreshold = 0.25
)

type label struct {
	row, col int
	text     []rune
	tint     color.RGBA
}

// Canvas is a braille render.Canvas. Each terminal cell holds 2x4 sub-pixels, and every
// sub-pixel keeps an intensity so translucent fills fade trails the way a raster would.
type Canvas struct {
	Width, Height int

	level  []float64
	tint   []color.RGBA
	labels []label
}

// NewCanvas creates a canvas of w by h terminal cells.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * 2 * h * 4
	return &Canvas{
		Width:  w,
		Height: h,
		level:  make([]float64, n),
		tint:   make([]color.RGBA, n),
	}
}

// SubSize returns the canvas size in sub-pixels.
func (c *Canvas) SubSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) index(x, y int) (int, bool) {
	sw, sh := c.SubSize()
	if x < 0 || y < 0 || x >= sw || y >= sh {
		return 0, false
	}
	return y*sw + x, true
}

// Set raises the sub-pixel at (x, y) to level, taking its tint when it gets brighter.
func (c *Canvas) Set(x, y int, level float64, tint color.RGBA) {
	i, ok := c.index(x, y)
	if !ok || level <= c.level[i] {
		return
	}
	c.level[i] = math.Min(level, 1)
	c.tint[i] = tint
}

// Unset clears a sub-pixel.
func (c *Canvas) Unset(x, y int) {
	if i, ok := c.index(x, y); ok {
		c.level[i] = 0
	}
}

// Level returns the intensity of a sub-pixel, zero when out of range.
func (c *Canvas) Level(x, y int) float64 {
	if i, ok := c.index(x, y); ok {
		return c.level[i]
	}
	return 0
}

// Lit reports whether the sub-pixel at (x, y) renders as a dot.
func (c *Canvas) Lit(x, y int) bool { return c.Level(x, y) > LitThreshold }

func (c *Canvas) Clear(color.RGBA) {
	for i := range c.level {
		c.level[i] = 0
	}
	c.labels = c.labels[:0]
}

func (c *Canvas) Fill(_ color.RGBA, alpha float64) {
	if alpha >= 1 {
		c.Clear(color.RGBA{})
		return
	}
	keep := 1 - math.Max(alpha, 0)
	for i := range c.level {
		c.level[i] *= keep
	}
	c.labels = c.labels[:0]
}

// disk visits every sub-pixel whose centre lies within [rmin, rmax] of (x, y).
func (c *Canvas) disk(x, y, rmin, rmax float64, fn func(px, py int, d float64)) {
	x0, x1 := int(math.Floor(x-rmax)), int(math.Ceil(x+rmax))
	y0, y1 := int(math.Floor(y-rmax)), int(math.Ceil(y+rmax))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y)
			if d >= rmin && d <= rmax {
				fn(px, py, d)
			}
		}
	}
}

func (c *Canvas) Circle(x, y, r float64, col color.RGBA, alpha float64) {
	c.disk(x, y, 0, r+0.5, func(px, py int, _ float64) {
		c.Set(px, py, alpha, col)
	})
	c.Set(int(math.Floor(x)), int(math.Floor(y)), alpha, col)
}

func (c *Canvas) Ring(x, y, r, width float64, col color.RGBA, alpha float64) {
	half := width/2 + 0.5
	c.disk(x, y, math.Max(r-half, 0), r+half, func(px, py int, _ float64) {
		c.Set(px, py, alpha, col)
	})
}

func (c *Canvas) Glow(x, y, inner, outer float64, stops []render.Stop) {
	if len(stops) == 0 || outer <= 0 {
		return
	}
	span := outer - inner
	c.disk(x, y, 0, outer, func(px, py int, d float64) {
		t := 0.0
		if span > 0 {
			t = (d - inner) / span
		}
		col, a := stopAt(stops, t)
		c.Set(px, py, a, col)
	})
}

// stopAt interpolates the gradient at offset t.
func stopAt(stops []render.Stop, t float64) (color.RGBA, float64) {
	if t <= stops[0].Offset {
		return stops[0].Color, stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			f := 0.0
			if b.Offset > a.Offset {
				f = (t - a.Offset) / (b.Offset - a.Offset)
			}
			if f < 0.5 {
				return a.Color, a.Alpha + f*(b.Alpha-a.Alpha)
			}
			return b.Color, a.Alpha + f*(b.Alpha-a.Alpha)
		}
	}
	last := stops[len(stops)-1]
	return last.Color, last.Alpha
}

// Text places s on the cell row containing y, centred on x. Size and weight are ignored.
func (c *Canvas) Text(s string, x, y, _ float64, _ bool, col color.RGBA, alpha float64) {
	if alpha <= LitThreshold || s == "" {
		return
	}
	runes := []rune(s)
	c.labels = append(c.labels, label{
		row:  int(math.Floor(y / 4)),
		col:  int(math.Floor(x/2)) - len(runes)/2,
		text: runes,
		tint: col,
	})
}

type cell struct {
	r    rune
	tint color.RGBA
	set  bool
}

func (c *Canvas) cells() [][]cell {
	rows := make([][]cell, c.Height)
	sw, _ := c.SubSize()
	for row := range rows {
		rows[row] = make([]cell, c.Width)
		for col := range rows[row] {
			ch := cell{r: brailleBlank}
			best := 0.0
			for sy := 0; sy < 4; sy++ {
				for sx := 0; sx < 2; sx++ {
					i := (row*4+sy)*sw + col*2 + sx
					if c.level[i] <= LitThreshold {
						continue
					}
					ch.r |= rune(pixelMap[sy][sx])
					ch.set = true
					if c.level[i] > best {
						best = c.level[i]
						ch.tint = c.tint[i]
					}
				}
			}
			rows[row][col] = ch
		}
	}
	for _, l := range c.labels {
		if l.row < 0 || l.row >= c.Height {
			continue
		}
		for k, r := range l.text {
			col := l.col + k
			if col < 0 || col >= c.Width {
				continue
			}
			rows[l.row][col] = cell{r: r, tint: l.tint, set: true}
		}
	}
	return rows
}

// Plain renders the canvas without colour.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.cells() {
		for _, ch := range row {
			b.WriteRune(ch.r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

var (
	styleMu    sync.Mutex
	styleCache = map[color.RGBA]lipgloss.Style{}
)

func tintStyle(col color.RGBA) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()
	if s, ok := styleCache[col]; ok {
		return s
	}
	cf, _ := colorful.MakeColor(col)
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(cf.Hex()))
	styleCache[col] = s
	return s
}

// String renders the canvas with each run of equally tinted cells in its colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells() {
		var run []rune
		var runTint color.RGBA
		runSet := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runSet {
				b.WriteString(tintStyle(runTint).Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for _, ch := range row {
			if ch.set != runSet || (ch.set && ch.tint != runTint) {
				flush()
				runSet, runTint = ch.set, ch.tint
			}
			run = append(run, ch.r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

// Surface is an engine surface measured in braille sub-pixels.
type Surface struct {
	mu         sync.Mutex
	cols, rows int
	canvas     *Canvas
}

// NewSurface creates a surface of cols by rows terminal cells.
func NewSurface(cols, rows int) *Surface {
	return &Surface{cols: cols, rows: rows}
}

// SetCells records a new size in terminal cells. The engine picks it up on its next resize.
func (s *Surface) SetCells(cols, rows int) {
	s.mu.Lock()
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.mu.Unlock()
}

func (s *Surface) Size() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.cols * 2), float64(s.rows * 4)
}

func (s *Surface) PixelRatio() float64 { return 1 }

func (s *Surface) Allocate(vp render.Viewport) render.Canvas {
	c := NewCanvas(int(vp.Width)/2, int(vp.Height)/4)
	s.mu.Lock()
	s.canvas = c
	s.mu.Unlock()
	return c
}

// Canvas returns the current canvas, nil before the first allocation.
func (s *Surface) Canvas() *Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}
