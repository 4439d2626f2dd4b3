package engine

import (
	"log/slog"
	"time"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/dynamo"
	"github.com/san-kum/phaseviz/internal/render"
)

// Headless runs an engine against an off-screen raster on a synthetic clock. The render
// and record commands use it.
type Headless struct {
	Engine  *Engine
	Loop    *ManualLoop
	Surface *render.ImageSurface
	Motion  *MotionSwitch

	now time.Duration
}

// NewHeadless builds an engine on a width by height raster. With reduced set the engine
// renders its static frame immediately and never runs.
func NewHeadless(cfg *config.Config, width, height, ratio float64, reduced bool, log *slog.Logger) (*Headless, error) {
	h := &Headless{
		Loop:    NewManualLoop(),
		Surface: render.NewImageSurface(width, height, ratio),
		Motion:  NewMotionSwitch(reduced),
	}
	e, err := New(Host{Surface: h.Surface, Loop: h.Loop, Motion: h.Motion, Logger: log}, cfg)
	if err != nil {
		return nil, err
	}
	h.Engine = e
	e.OnVisible()
	return h, nil
}

// Advance pumps the loop one frame interval at a time until frames more frames have
// executed. It gives up early when the engine stops running and returns the number of
// frames executed. A destroyed engine yields dynamo.ErrDestroyed.
func (h *Headless) Advance(frames int) (int, error) {
	e := h.Engine
	if e.State() == Destroyed {
		return 0, dynamo.ErrDestroyed
	}
	if e == nil || frames <= 0 {
		return 0, nil
	}
	start := e.Frame()
	target := start + frames
	interval := e.sched.Interval()
	budget := 2*frames + int(time.Duration(e.cfg.StartDelayMs)*time.Millisecond/interval) + 2
	for pumps := 0; e.Frame() < target && pumps < budget; pumps++ {
		if e.State() != Running {
			break
		}
		h.Loop.Pump(h.now)
		h.now += interval
	}
	return e.Frame() - start, nil
}

// Now returns the synthetic clock.
func (h *Headless) Now() time.Duration { return h.now }
