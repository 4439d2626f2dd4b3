package viz

import (
	"image/color"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/engine"
	"github.com/san-kum/phaseviz/internal/render"
)

var white = color.RGBA{255, 255, 255, 255}

func plainRows(c *Canvas) []string {
	return strings.Split(strings.TrimSuffix(c.Plain(), "\n"), "\n")
}

func TestCanvasBraille(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, 1, white)
	c.Set(3, 3, 1, white)

	row := []rune(plainRows(c)[0])
	if row[0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", row[0])
	}
	if row[1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", row[1])
	}

	c.Unset(0, 0)
	if c.Lit(0, 0) {
		t.Error("unset sub-pixel still lit")
	}
	if c.Lit(-1, 0) || c.Lit(4, 0) {
		t.Error("out of range sub-pixel reported lit")
	}
}

func TestCanvasFillFades(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, 1, white)

	c.Fill(color.RGBA{}, 0.5)
	if !c.Lit(0, 0) {
		t.Fatal("half faded dot should stay lit")
	}
	c.Fill(color.RGBA{}, 0.5)
	if c.Lit(0, 0) {
		t.Errorf("level %v should be at or below threshold", c.Level(0, 0))
	}

	c.Set(0, 0, 1, white)
	c.Fill(color.RGBA{}, 1)
	if c.Level(0, 0) != 0 {
		t.Error("opaque fill should clear")
	}
}

func TestCanvasShapes(t *testing.T) {
	c := NewCanvas(8, 4)

	c.Circle(4, 4, 1.2, white, 0.8)
	if !c.Lit(4, 4) {
		t.Error("circle centre not lit")
	}
	if c.Lit(0, 0) || c.Lit(7, 7) {
		t.Error("circle leaked")
	}

	c.Clear(color.RGBA{})
	c.Circle(4, 4, 1.2, white, 0.15)
	if c.Lit(4, 4) {
		t.Error("faint circle should not show")
	}

	c.Clear(color.RGBA{})
	c.Ring(8, 8, 4, 1, white, 1)
	if c.Lit(8, 8) {
		t.Error("ring filled its centre")
	}
	if !c.Lit(12, 8) {
		t.Error("ring edge not lit")
	}

	c.Clear(color.RGBA{})
	c.Glow(8, 8, 0, 4, []render.Stop{
		{Offset: 0, Color: white, Alpha: 1},
		{Offset: 1, Color: white, Alpha: 0},
	})
	if !c.Lit(8, 8) {
		t.Error("glow core not lit")
	}
	if c.Lit(11, 8) {
		t.Error("glow edge should be faint")
	}
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas(10, 2)
	c.Text("hi", 10, 5, 12, false, white, 1)

	row := []rune(plainRows(c)[1])
	if string(row[4:6]) != "hi" {
		t.Errorf("row = %q, want hi at column 4", string(row))
	}

	c.Text("faint", 10, 1, 12, false, white, 0.1)
	if strings.Contains(c.Plain(), "faint") {
		t.Error("transparent text rendered")
	}

	c.Clear(color.RGBA{})
	if strings.Contains(c.Plain(), "hi") {
		t.Error("clear kept the label")
	}
}

func TestCanvasStringKeepsGlyphs(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0, 1, color.RGBA{255, 0, 0, 255})
	c.Set(2, 0, 1, color.RGBA{0, 255, 0, 255})

	out := c.String()
	if strings.Count(out, string(rune(0x2801))) != 2 {
		t.Errorf("String() lost glyphs: %q", out)
	}
	if !strings.Contains(out, string(rune(brailleBlank))) {
		t.Error("blank cell missing")
	}
}

func TestSurface(t *testing.T) {
	s := NewSurface(10, 5)
	if w, h := s.Size(); w != 20 || h != 20 {
		t.Fatalf("Size() = %v,%v, want 20,20", w, h)
	}
	if s.Canvas() != nil {
		t.Error("canvas before allocation")
	}
	s.Allocate(render.NewViewport(20, 20, 1))
	if c := s.Canvas(); c == nil || c.Width != 10 || c.Height != 5 {
		t.Fatalf("canvas = %+v", c)
	}

	s.SetCells(-3, 2)
	if w, h := s.Size(); w != 0 || h != 8 {
		t.Errorf("negative cells: %v,%v", w, h)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back")
	}
	seen := map[string]bool{}
	th := Themes[0]
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != Themes[0].Name {
		t.Errorf("NextTheme did not cycle: %v", seen)
	}
	if got := GradientText("abc", ThemeAbyss.Title, ThemeAbyss.Accent); !strings.Contains(got, "a") {
		t.Errorf("GradientText = %q", got)
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	m, err := NewModel(cfg, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLifecycle(t *testing.T) {
	m := newTestModel(t)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule a tick")
	}
	eng := m.Engine()
	if eng.State() != engine.Running {
		t.Fatalf("state = %v, want running", eng.State())
	}

	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if c := m.surface.Canvas(); c.Width != 80-panelWidth || c.Height != 24-headerLines-footerLines {
		t.Fatalf("canvas %dx%d after resize", c.Width, c.Height)
	}

	m = update(m, TickMsg(time.Now()))
	if eng.Frame() != 1 {
		t.Errorf("frame = %d after first tick", eng.Frame())
	}
	if len(m.history) != 1 {
		t.Errorf("history = %d", len(m.history))
	}
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("view missing running status")
	}

	m = update(m, key(" "))
	if eng.State() != engine.Paused {
		t.Errorf("space: state = %v", eng.State())
	}
	m = update(m, key(" "))
	if eng.State() != engine.Running {
		t.Errorf("second space: state = %v", eng.State())
	}

	k := eng.Parameter()
	m = update(m, key("+"))
	if got := eng.Parameter(); got <= k {
		t.Errorf("K %v did not increase from %v", got, k)
	}

	m = update(m, key("m"))
	if !eng.Static() || eng.State() == engine.Running {
		t.Error("reduced motion should stop on a static frame")
	}
	if !strings.Contains(m.View(), "STATIC") {
		t.Error("view missing static status")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil || eng.State() != engine.Destroyed {
		t.Error("q should destroy and quit")
	}
}

func TestModelClickInjects(t *testing.T) {
	m := newTestModel(t)
	m.Init()
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	v := m.Engine().Variant().(*engine.MapVariant)
	before := len(v.Population().Tracers())

	m = update(m, tea.MouseMsg{X: 10, Y: headerLines + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := len(v.Population().Tracers()); got != before+1 {
		t.Errorf("tracers = %d, want %d", got, before+1)
	}

	m = update(m, tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := len(v.Population().Tracers()); got != before+1 {
		t.Error("click on the header should be ignored")
	}

	m = update(m, tea.MouseMsg{X: 10, Y: headerLines + 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := len(v.Population().Tracers()); got != before+1 {
		t.Error("release should not inject")
	}
}
