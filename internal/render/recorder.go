package render

import "image/color"

// Op is one recorded canvas call.
type Op struct {
	Kind  string
	X, Y  float64
	R     float64
	Alpha float64
	Color color.RGBA
	Text  string
}

// Recorder is a Canvas that keeps every call instead of drawing. Headless dry runs and
// tests use it.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: c, Alpha: 1})
}

func (r *Recorder) Fill(c color.RGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "fill", Color: c, Alpha: alpha})
}

func (r *Recorder) Circle(x, y, rad float64, c color.RGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: x, Y: y, R: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) Ring(x, y, rad, _ float64, c color.RGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "ring", X: x, Y: y, R: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) Glow(x, y, _, outer float64, stops []Stop) {
	op := Op{Kind: "glow", X: x, Y: y, R: outer}
	if len(stops) > 0 {
		op.Color, op.Alpha = stops[0].Color, stops[0].Alpha
	}
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Text(s string, x, y, _ float64, _ bool, c color.RGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Color: c, Alpha: alpha, Text: s})
}

// Count returns how many recorded calls have the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
