package engine

import (
	"image/color"
	"math/rand"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/dynamo"
	"github.com/san-kum/phaseviz/internal/physics"
	"github.com/san-kum/phaseviz/internal/population"
	"github.com/san-kum/phaseviz/internal/render"
)

// IslandSeeds sit on the standard map's main resonance islands.
var IslandSeeds = []dynamo.Point{
	{Q: 0.5, P: 0.0},
	{Q: 0.5, P: 0.5},
	{Q: 0.25, P: 0.5},
	{Q: 0.75, P: 0.5},
}

// MapVariant animates a population under the standard map.
type MapVariant struct {
	cfg     *config.Config
	sm      *physics.StandardMap
	pop     *population.Population
	painter *render.MapPainter
}

func NewMapVariant(cfg *config.Config, rng *rand.Rand) *MapVariant {
	sm := physics.NewStandardMap(cfg.K)
	if cfg.FastTrig {
		sm.Trig = dynamo.DefaultTrigTable
	}
	pop := population.New(population.Options{
		TrailLength:       cfg.TrailLength,
		MaxTracers:        cfg.MaxTracers,
		TracerMaxAge:      cfg.TracerMaxAge,
		TracerTrailLength: cfg.TracerTrailLength,
		Jitter:            cfg.Jitter,
	}, rng)

	v := &MapVariant{
		cfg: cfg,
		sm:  sm,
		pop: pop,
		painter: render.NewMapPainter(render.MapStyle{
			Radius:     cfg.ParticleRadius,
			Primary:    rgba(cfg.PrimaryColor),
			Highlight:  rgba(cfg.HighlightColor),
			Background: rgba(cfg.Background),
			FadeAlpha:  cfg.FadeAlpha,
			Hue:        cfg.ColorMode == config.ColorHue,
		}),
	}
	v.populate()
	return v
}

func rgba(c config.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (v *MapVariant) populate() {
	v.pop.InitializeGrid(v.cfg.NumEntities)
	if v.cfg.IslandSeeds {
		v.pop.AddAnchored(IslandSeeds)
	}
}

func (v *MapVariant) Name() string { return "map" }

func (v *MapVariant) StepPrimary() { v.pop.AdvancePrimary(v.sm) }

func (v *MapVariant) StepTracers() int {
	v.pop.AdvanceTracers(v.sm)
	return v.pop.PruneExpired()
}

func (v *MapVariant) Refresh() { v.pop.SoftRefresh() }

func (v *MapVariant) Inject(vp render.Viewport, x, y float64) bool {
	if vp.Empty() {
		return false
	}
	return v.pop.AddSpecial(vp.FromPixel(x, y))
}

func (v *MapVariant) SetParameter(k float64) {
	// values reaching here are already clamped and finite
	_ = v.sm.SetParam("k", k)
}

func (v *MapVariant) Parameter() float64 { return v.sm.K }

// Reset rebuilds the primary grid and drops every tracer. K is kept.
func (v *MapVariant) Reset() {
	v.populate()
	v.pop.ClearTracers()
}

func (v *MapVariant) Draw(c render.Canvas, vp render.Viewport) bool {
	return v.painter.Frame(c, vp, v.pop)
}

func (v *MapVariant) DrawStatic(c render.Canvas, vp render.Viewport) bool {
	return v.painter.Static(c, vp, v.pop, v.sm, v.cfg.StaticIterations)
}

func (v *MapVariant) Repaint(c render.Canvas, vp render.Viewport) bool {
	return v.painter.Repaint(c, vp, v.pop)
}

func (v *MapVariant) Population() *population.Population { return v.pop }
func (v *MapVariant) Map() *physics.StandardMap          { return v.sm }
