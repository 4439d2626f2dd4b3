package render

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/phaseviz/internal/dynamo"
	"github.com/san-kum/phaseviz/internal/physics"
	"github.com/san-kum/phaseviz/internal/population"
	"github.com/san-kum/phaseviz/internal/ranking"
)

func testPopulation(n int) *population.Population {
	pop := population.New(population.Options{
		TrailLength:       4,
		MaxTracers:        3,
		TracerMaxAge:      100,
		TracerTrailLength: 8,
		Jitter:            0.02,
	}, rand.New(rand.NewSource(1)))
	pop.InitializeGrid(n)
	return pop
}

func TestViewportMapping(t *testing.T) {
	vp := NewViewport(200, 100, 2)

	tests := []struct {
		name   string
		pt     dynamo.Point
		wx, wy float64
	}{
		{"origin is bottom left", dynamo.Point{Q: 0, P: 0}, 0, 100},
		{"centre", dynamo.Point{Q: 0.5, P: 0.5}, 100, 50},
		{"high p renders up", dynamo.Point{Q: 0.25, P: 0.9}, 50, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := vp.ToPixel(tt.pt)
			if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
				t.Errorf("ToPixel(%v) = (%v, %v), want (%v, %v)", tt.pt, x, y, tt.wx, tt.wy)
			}
			back := vp.FromPixel(x, y)
			if math.Abs(back.Q-tt.pt.Q) > 1e-9 || math.Abs(back.P-tt.pt.P) > 1e-9 {
				t.Errorf("FromPixel round trip gave %v", back)
			}
		})
	}

	w, h := vp.Backing()
	if w != 400 || h != 200 {
		t.Errorf("expected 400x200 backing, got %dx%d", w, h)
	}
}

func TestFromPixelWraps(t *testing.T) {
	vp := NewViewport(100, 100, 1)
	pt := vp.FromPixel(150, 0)
	if !pt.IsValid() {
		t.Errorf("expected wrapped point, got %v", pt)
	}
	if pt := NewViewport(0, 100, 1).FromPixel(10, 10); pt != (dynamo.Point{}) {
		t.Errorf("empty viewport should map to origin, got %v", pt)
	}
}

func TestMapFrameEmptyViewport(t *testing.T) {
	rec := &Recorder{}
	mp := NewMapPainter(MapStyle{Radius: 1, FadeAlpha: 0.1})
	pop := testPopulation(9)

	for _, vp := range []Viewport{NewViewport(0, 0, 1), NewViewport(100, 0, 2), NewViewport(0, 50, 1)} {
		if mp.Frame(rec, vp, pop) {
			t.Errorf("frame on %+v reported a draw", vp)
		}
		if mp.Static(rec, vp, pop, physics.NewStandardMap(1), 10) {
			t.Errorf("static frame on %+v reported a draw", vp)
		}
	}
	if len(rec.Ops) != 0 {
		t.Errorf("expected no draw calls, got %d", len(rec.Ops))
	}
}

func TestMapFrameFadeAndPrimaries(t *testing.T) {
	vp := NewViewport(100, 100, 1)
	pop := testPopulation(9)

	rec := &Recorder{}
	mp := NewMapPainter(MapStyle{Radius: 1, FadeAlpha: 0.1})
	mp.Frame(rec, vp, pop)
	if rec.Count("fill") != 1 || rec.Count("clear") != 0 {
		t.Errorf("translucent fade expected, got %v", rec.Ops[0])
	}
	if rec.Count("circle") != 9 {
		t.Errorf("expected 9 primaries, got %d", rec.Count("circle"))
	}

	rec.Reset()
	mp.Style.FadeAlpha = 1
	mp.Frame(rec, vp, pop)
	if rec.Ops[0].Kind != "clear" {
		t.Errorf("full fade should clear, got %s", rec.Ops[0].Kind)
	}
}

func TestMapFrameTracer(t *testing.T) {
	vp := NewViewport(100, 100, 1)
	pop := testPopulation(4)
	pop.AddSpecial(dynamo.Point{Q: 0.3, P: 0.3})
	m := physics.NewStandardMap(1)
	for i := 0; i < 5; i++ {
		pop.AdvanceTracers(m)
	}

	rec := &Recorder{}
	mp := NewMapPainter(MapStyle{Radius: 1, FadeAlpha: 0.1, Highlight: color.RGBA{R: 100, G: 255, B: 220, A: 255}})
	mp.Frame(rec, vp, pop)

	if rec.Count("glow") != 1 {
		t.Fatalf("expected one tracer glow, got %d", rec.Count("glow"))
	}
	// 4 primaries, 5 trail points, core and inner core
	if got := rec.Count("circle"); got != 4+5+2 {
		t.Errorf("expected 11 circles, got %d", got)
	}

	var trail []float64
	for _, op := range rec.Ops {
		if op.Kind == "circle" && op.Color.G == 255 && op.Alpha < 0.7 {
			trail = append(trail, op.Alpha)
		}
	}
	for i := 1; i < len(trail); i++ {
		if trail[i] <= trail[i-1] {
			t.Errorf("trail opacity should increase towards the head: %v", trail)
		}
	}
}

func TestStaticDoesNotMutate(t *testing.T) {
	vp := NewViewport(50, 50, 1)
	pop := testPopulation(4)
	before := make([]dynamo.Point, 4)
	for i, e := range pop.Primary() {
		before[i] = e.Pos
	}

	rec := &Recorder{}
	mp := NewMapPainter(MapStyle{Radius: 1})
	mp.Static(rec, vp, pop, physics.NewStandardMap(1.2), 20)

	if rec.Ops[0].Kind != "clear" {
		t.Error("static frame should start from a clean background")
	}
	if got := rec.Count("circle"); got != 4*21 {
		t.Errorf("expected %d orbit points, got %d", 4*21, got)
	}
	for i, e := range pop.Primary() {
		if e.Pos != before[i] || e.Age != 0 {
			t.Errorf("primary %d changed during static render", i)
		}
	}
}

func TestStaticDrawsTracerOrbits(t *testing.T) {
	vp := NewViewport(50, 50, 1)
	pop := testPopulation(4)
	pop.AddSpecial(dynamo.Point{Q: 0.3, P: 0.6})

	rec := &Recorder{}
	mp := NewMapPainter(MapStyle{Radius: 1, Highlight: color.RGBA{R: 255, A: 255}})
	mp.Static(rec, vp, pop, physics.NewStandardMap(1.2), 20)

	if rec.Count("glow") != 1 {
		t.Errorf("expected one tracer glow, got %d", rec.Count("glow"))
	}
	highlighted := 0
	for _, op := range rec.Ops {
		if op.Kind == "circle" && op.Color == mp.Style.Highlight {
			highlighted++
		}
	}
	// orbit points plus the core
	if highlighted != 21 {
		t.Errorf("expected 21 highlighted circles, got %d", highlighted)
	}
	if len(pop.Tracers()) != 1 || pop.Tracers()[0].Age != 0 {
		t.Error("static frame must not age tracers")
	}
}

func TestHueColours(t *testing.T) {
	pal := HuePalette(4)
	if len(pal) != 4 {
		t.Fatalf("expected 4 colours, got %d", len(pal))
	}
	if !(pal[0].R > pal[0].G && pal[0].G == pal[0].B) {
		t.Errorf("hue 0 should be red, got %v", pal[0])
	}

	pop := testPopulation(4)
	pop.AddAnchored([]dynamo.Point{{Q: 0.5, P: 0.5}})
	primary := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	rec := &Recorder{}
	mp := NewMapPainter(MapStyle{Radius: 1, Hue: true, Primary: primary, FadeAlpha: 1})
	mp.Frame(rec, NewViewport(10, 10, 1), pop)

	circles := rec.Ops[1:]
	if circles[0].Color != pal[0] {
		t.Errorf("first grid primary should take hue 0, got %v", circles[0].Color)
	}
	if circles[4].Color != primary {
		t.Errorf("anchored primary should use the primary colour, got %v", circles[4].Color)
	}
}

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#00d4aa")
	if !ok || c != (color.RGBA{R: 0, G: 212, B: 170, A: 255}) {
		t.Errorf("unexpected parse %v %v", c, ok)
	}
	if _, ok := ParseHex("teal"); ok {
		t.Error("expected failure for a name")
	}
}

func TestRankLayoutIndexAt(t *testing.T) {
	l := NewRankLayout(NewViewport(300, 200, 1), 10)
	if l.Size != 200 || l.OX != 50 || l.OY != 0 {
		t.Fatalf("unexpected layout %+v", l)
	}
	for _, i := range []int{0, 9, 42, 99} {
		x, y := l.Center(i)
		if got := l.IndexAt(x, y, 100); got != i {
			t.Errorf("IndexAt(Center(%d)) = %d", i, got)
		}
	}
	if l.IndexAt(10, 10, 100) != -1 {
		t.Error("point left of the grid should miss")
	}
	if l.IndexAt(l.OX+l.Size-1, l.OY+l.Size-1, 95) != -1 {
		t.Error("slot beyond total should miss")
	}
}

func TestRankFrameText(t *testing.T) {
	sel := ranking.NewSelection(100, 10, rand.New(rand.NewSource(1)))
	a := ranking.NewAnimation(sel)
	stats := ranking.FormatStats(10, 100, "", "label")
	rp := NewRankPainter(DefaultRankStyle())
	vp := NewViewport(300, 300, 1)

	rec := &Recorder{}
	rp.Frame(rec, vp, a, stats, nil)
	if rec.Count("circle") != 100 || rec.Count("text") != 0 {
		t.Errorf("initial frame: %d circles, %d texts", rec.Count("circle"), rec.Count("text"))
	}

	a.Elimination = 1
	a.Zoom = 0.4
	sel.Reveal(1)
	rec.Reset()
	rp.Frame(rec, vp, a, stats, nil)
	if rec.Count("glow") != 1 || rec.Count("text") != 0 {
		t.Errorf("zoom below threshold should draw the disk without text")
	}

	rec.Reset()
	rp.Settled(rec, vp, a, stats, nil)
	if rec.Count("text") != 3 {
		t.Errorf("settled frame should draw three texts, got %d", rec.Count("text"))
	}
	var found bool
	for _, op := range rec.Ops {
		if op.Kind == "text" && op.Text == "Top 10%" {
			found = true
		}
	}
	if !found {
		t.Error("headline missing")
	}
}

func TestRankFrameHighlights(t *testing.T) {
	sel := ranking.NewSelection(100, 10, rand.New(rand.NewSource(1)))
	a := ranking.NewAnimation(sel)
	rp := NewRankPainter(DefaultRankStyle())

	rec := &Recorder{}
	nonSurvivor := sel.Order[0]
	rp.Frame(rec, NewViewport(100, 100, 1), a, ranking.Stats{}, []int{sel.Survivors[0], nonSurvivor})
	if rec.Count("ring") != 1 {
		t.Errorf("only survivors can be highlighted, got %d rings", rec.Count("ring"))
	}
}

func TestImageCanvas(t *testing.T) {
	c := NewImageCanvas(NewViewport(20, 10, 2))
	img := c.Image()
	if img == nil {
		t.Fatal("expected a raster")
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("expected 40x20 raster, got %v", b)
	}

	c.Clear(color.RGBA{A: 255})
	c.Circle(10, 5, 3, color.RGBA{R: 255, A: 255}, 1)
	c.Text("x", 17, 5, 4, true, color.RGBA{G: 255, A: 255}, 1)
	if r := img.RGBAAt(20, 10).R; r == 0 {
		t.Error("circle centre should be painted at the scaled position")
	}
	if img.RGBAAt(0, 0).R != 0 {
		t.Error("corner should stay background")
	}

	empty := NewImageCanvas(NewViewport(0, 10, 1))
	empty.Clear(color.RGBA{A: 255})
	empty.Circle(1, 1, 1, color.RGBA{A: 255}, 1)
	if empty.Image() != nil {
		t.Error("empty canvas should have no raster")
	}
}

func TestImageSurfaceAllocate(t *testing.T) {
	s := NewImageSurface(30, 20, 1)
	if s.Image() != nil {
		t.Fatal("no raster before allocation")
	}
	w, h := s.Size()
	s.Allocate(NewViewport(w, h, s.PixelRatio()))
	if img := s.Image(); img == nil || img.Bounds().Dx() != 30 {
		t.Fatal("expected a 30 pixel wide raster")
	}
	s.SetSize(0, 0)
	w, h = s.Size()
	s.Allocate(NewViewport(w, h, 1))
	if s.Image() != nil {
		t.Error("zero-size allocation should drop the raster")
	}
}
