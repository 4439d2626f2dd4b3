package engine

import (
	"github.com/san-kum/phaseviz/internal/population"
	"github.com/san-kum/phaseviz/internal/render"
)

// Variant is the population, update rule and renderer the engine drives.
type Variant interface {
	Name() string

	// StepPrimary advances the primary population by one simulation step.
	StepPrimary()
	// StepTracers advances injected entities and prunes expired ones, returning how many
	// were removed.
	StepTracers() int
	// Refresh soft-refreshes the primary population.
	Refresh()

	// Inject handles a click at logical pixel (x, y) and reports whether anything changed.
	Inject(vp render.Viewport, x, y float64) bool
	SetParameter(v float64)
	Parameter() float64
	Reset()

	Draw(c render.Canvas, vp render.Viewport) bool
	// DrawStatic renders the fully iterated one-shot frame used for reduced motion.
	DrawStatic(c render.Canvas, vp render.Viewport) bool
	// Repaint redraws accumulated state onto a freshly allocated canvas.
	Repaint(c render.Canvas, vp render.Viewport) bool
}

// PopulationSource is implemented by variants that own a particle population.
type PopulationSource interface {
	Population() *population.Population
}
