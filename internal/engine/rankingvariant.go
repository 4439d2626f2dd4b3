package engine

import (
	"math/rand"
	"slices"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/ranking"
	"github.com/san-kum/phaseviz/internal/render"
)

const defaultMaxHighlights = 12

// RankingVariant plays the dot-elimination animation. It has no map and never refreshes.
type RankingVariant struct {
	sel     *ranking.Selection
	anim    *ranking.Animation
	stats   ranking.Stats
	painter *render.RankPainter

	highlights    []int
	maxHighlights int
}

func NewRankingVariant(cfg *config.Config, rng *rand.Rand) *RankingVariant {
	sel := ranking.NewSelection(cfg.Ranking.Total, cfg.Ranking.Rank, rng)
	style := render.DefaultRankStyle()
	style.Accent = rgba(cfg.PrimaryColor)
	style.Background = rgba(cfg.Background)

	limit := cfg.MaxTracers
	if limit <= 0 {
		limit = defaultMaxHighlights
	}
	return &RankingVariant{
		sel:           sel,
		anim:          ranking.NewAnimation(sel),
		stats:         ranking.FormatStats(sel.Rank, sel.Total, cfg.Ranking.Percentile, cfg.Ranking.Label),
		painter:       render.NewRankPainter(style),
		maxHighlights: limit,
	}
}

func (v *RankingVariant) Name() string { return "ranking" }

func (v *RankingVariant) StepPrimary()     { v.anim.Step() }
func (v *RankingVariant) StepTracers() int { return 0 }
func (v *RankingVariant) Refresh()         {}

// Inject highlights the survivor under the click. Clicks on other dots are ignored.
func (v *RankingVariant) Inject(vp render.Viewport, x, y float64) bool {
	if vp.Empty() {
		return false
	}
	i := render.NewRankLayout(vp, v.sel.Cols).IndexAt(x, y, v.sel.Total)
	if !v.sel.IsSurvivor(i) || slices.Contains(v.highlights, i) {
		return false
	}
	if len(v.highlights) >= v.maxHighlights {
		v.highlights = v.highlights[1:]
	}
	v.highlights = append(v.highlights, i)
	return true
}

// SetParameter scales the animation speed.
func (v *RankingVariant) SetParameter(speed float64) {
	if speed > 0 {
		v.anim.Speed = speed
	}
}

func (v *RankingVariant) Parameter() float64 { return v.anim.Speed }

// Reset replays the animation with the same survivors.
func (v *RankingVariant) Reset() {
	v.anim.Restart()
	v.highlights = nil
}

func (v *RankingVariant) Draw(c render.Canvas, vp render.Viewport) bool {
	return v.painter.Frame(c, vp, v.anim, v.stats, v.highlights)
}

func (v *RankingVariant) DrawStatic(c render.Canvas, vp render.Viewport) bool {
	return v.painter.Settled(c, vp, v.anim, v.stats, v.highlights)
}

func (v *RankingVariant) Repaint(c render.Canvas, vp render.Viewport) bool {
	return v.Draw(c, vp)
}

func (v *RankingVariant) Selection() *ranking.Selection { return v.sel }
func (v *RankingVariant) Animation() *ranking.Animation { return v.anim }
func (v *RankingVariant) Highlights() []int             { return v.highlights }
