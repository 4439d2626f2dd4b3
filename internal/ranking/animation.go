package ranking

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Phase int

const (
	PhaseEliminate Phase = iota
	PhaseZoom
	PhasePulse
)

func (p Phase) String() string {
	switch p {
	case PhaseEliminate:
		return "eliminate"
	case PhaseZoom:
		return "zoom"
	case PhasePulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// Per-step increments, tuned for ~1.5 s of elimination and ~1 s of zoom at 60 steps/s.
const (
	EliminateRate = 0.025
	ZoomRate      = 0.03
	ZoomPulseRate = 0.1
	IdlePulseRate = 0.05
)

// Animation drives a Selection through its elimination, zoom and pulse phases.
type Animation struct {
	Sel *Selection

	Phase       Phase
	Elimination float64
	Zoom        float64
	Pulse       float64

	// Speed scales every increment; 1 is the reference pace.
	Speed float64
}

func NewAnimation(sel *Selection) *Animation {
	return &Animation{Sel: sel, Speed: 1}
}

// Step advances the animation by one simulation step.
func (a *Animation) Step() {
	speed := a.Speed
	if speed <= 0 {
		speed = 1
	}
	switch a.Phase {
	case PhaseEliminate:
		a.Elimination = settle(a.Elimination + EliminateRate*speed)
		a.Sel.Reveal(a.Elimination)
		if a.Elimination >= 1 {
			a.Phase = PhaseZoom
		}
	case PhaseZoom:
		a.Zoom = settle(a.Zoom + ZoomRate*speed)
		a.Pulse += ZoomPulseRate * speed
		if a.Zoom >= 1 {
			a.Phase = PhasePulse
		}
	default:
		a.Pulse += IdlePulseRate * speed
	}
}

// settle clamps accumulated progress to 1, absorbing float drift near the end.
func settle(v float64) float64 {
	if v >= 1-1e-9 {
		return 1
	}
	return v
}

// Finish jumps to the settled end state.
func (a *Animation) Finish() {
	a.Elimination = 1
	a.Zoom = 1
	a.Phase = PhasePulse
	a.Sel.Reveal(1)
}

// Restart rewinds to the beginning, keeping the selection.
func (a *Animation) Restart() {
	a.Phase = PhaseEliminate
	a.Elimination, a.Zoom, a.Pulse = 0, 0, 0
	a.Sel.ResetReveal()
}

// EaseOutCubic maps t in [0,1] to 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

// Stats is the text shown inside the zoomed disk.
type Stats struct {
	Headline string
	Detail   string
	Label    string
}

var printer = message.NewPrinter(language.English)

// FormatStats builds the overlay text. An empty percentile is derived from rank and total.
func FormatStats(rank, total int, percentile, label string) Stats {
	if percentile == "" {
		pct := 100 * float64(rank) / float64(max(total, 1))
		percentile = strconv.FormatFloat(pct, 'g', 3, 64)
	}
	return Stats{
		Headline: "Top " + percentile + "%",
		Detail:   printer.Sprintf("Rank %d of %d", rank, total),
		Label:    label,
	}
}
