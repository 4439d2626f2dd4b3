package engine

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/dynamo"
	"github.com/san-kum/phaseviz/internal/render"
)

type State int

const (
	Uninitialized State = iota
	Ready
	Running
	Paused
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// FrameInfo describes one executed frame.
type FrameInfo struct {
	Frame   int
	Now     time.Duration
	Primary bool
	Refresh bool
	Pruned  int
	Drawn   bool
}

// Observer is notified after every executed frame.
type Observer interface {
	OnFrame(info FrameInfo)
}

// Engine is the handle the host holds. Every method is safe to call on a nil *Engine.
type Engine struct {
	host    Host
	cfg     *config.Config
	log     *slog.Logger
	variant Variant
	sched   *Scheduler

	vp     render.Viewport
	canvas render.Canvas

	state     State
	frameID   FrameID
	scheduled bool
	visible   bool
	static    bool

	// set when a motion change, not the host, paused a running loop
	motionPaused bool

	cancels   []func()
	observers []Observer
	draws     int
}

// New builds an engine in the Ready state. It returns a nil handle when the host lacks a
// surface or a frame loop. cfg is copied and sanitized; nil means defaults.
func New(host Host, cfg *config.Config) (*Engine, error) {
	if host.Surface == nil {
		return nil, dynamo.ErrNoSurface
	}
	if host.Loop == nil {
		return nil, dynamo.ErrNoFrameLoop
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = cfg.Clone()

	log := host.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "engine", "variant", cfg.Variant)
	for _, adj := range cfg.Sanitize() {
		log.Warn("config clamped", "adjustment", adj)
	}

	rng := host.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	reg := host.Registry
	if reg == nil {
		reg = NewRegistry()
	}
	v, err := reg.Get(cfg.Variant, cfg, rng)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		host:    host,
		cfg:     cfg,
		log:     log,
		variant: v,
		sched: NewScheduler(cfg.TargetFPS, cfg.FramesPerIteration,
			time.Duration(cfg.RefreshIntervalMs)*time.Millisecond,
			time.Duration(cfg.StartDelayMs)*time.Millisecond),
	}
	e.allocate()

	if host.Motion != nil {
		e.cancels = append(e.cancels, host.Motion.Subscribe(e.onMotionChange))
	}
	if host.Events != nil {
		e.cancels = append(e.cancels,
			host.Events.OnResize(e.OnResize),
			host.Events.OnClick(e.OnPointerClick),
		)
	}

	e.state = Ready
	e.log.Debug("engine ready", "width", e.vp.Width, "height", e.vp.Height, "ratio", e.vp.PixelRatio)
	if e.reducedMotion() {
		e.renderStatic()
	}
	return e, nil
}

func (e *Engine) allocate() {
	w, h := e.host.Surface.Size()
	e.vp = render.NewViewport(w, h, e.host.Surface.PixelRatio())
	e.canvas = e.host.Surface.Allocate(e.vp)
}

func (e *Engine) reducedMotion() bool {
	return e.host.Motion != nil && e.host.Motion.ReducedMotion()
}

// OnVisible opens the visibility gate and starts the engine. The gate is one-way: later
// calls do nothing, and there is no way to close it again.
func (e *Engine) OnVisible() {
	if e == nil || e.state == Destroyed || e.visible {
		return
	}
	e.visible = true
	e.log.Debug("visible")
	e.Start()
}

// Visible reports whether the visibility gate has opened.
func (e *Engine) Visible() bool {
	return e != nil && e.visible
}

// Start runs the frame loop. It is a no-op while running or after Destroy. Under reduced
// motion it renders the static frame instead.
func (e *Engine) Start() {
	if e == nil || e.state == Destroyed || e.state == Running {
		return
	}
	if e.reducedMotion() {
		if !e.static {
			e.renderStatic()
		}
		return
	}
	e.static = false
	e.motionPaused = false
	e.state = Running
	e.sched.Resume()
	e.schedule()
	e.log.Debug("started")
}

// Stop cancels the pending frame. No callback runs afterwards until Start.
func (e *Engine) Stop() {
	if e == nil || e.state != Running {
		return
	}
	e.cancelFrame()
	e.state = Paused
	e.log.Debug("stopped", "frame", e.sched.Frame())
}

// Reset reinitializes the variant's population and animation in place. The lifecycle
// state and the current parameter are kept.
func (e *Engine) Reset() {
	if e == nil || e.state == Destroyed {
		return
	}
	e.variant.Reset()
	e.sched.Reset()
	e.log.Debug("reset")
	if e.static {
		e.renderStatic()
	} else if e.state != Running {
		e.draw()
	}
}

// SetParameter clamps v to the configured range and applies it from the next step on.
func (e *Engine) SetParameter(v float64) {
	if e == nil || e.state == Destroyed || math.IsNaN(v) {
		return
	}
	clamped := math.Max(e.cfg.ParamMin, math.Min(e.cfg.ParamMax, v))
	if clamped != v {
		e.log.Debug("parameter clamped", "value", v, "clamped", clamped)
	}
	e.variant.SetParameter(clamped)
	if e.static {
		e.renderStatic()
	}
}

// Parameter returns the variant's live parameter.
func (e *Engine) Parameter() float64 {
	if e == nil {
		return 0
	}
	return e.variant.Parameter()
}

// Destroy stops the engine and removes every listener it registered. It is terminal.
func (e *Engine) Destroy() {
	if e == nil || e.state == Destroyed {
		return
	}
	e.cancelFrame()
	for _, cancel := range e.cancels {
		if cancel != nil {
			cancel()
		}
	}
	e.cancels = nil
	e.observers = nil
	e.state = Destroyed
	e.log.Debug("destroyed")
}

// OnPointerClick injects a special entity at logical pixel (x, y). It never advances the
// simulation.
func (e *Engine) OnPointerClick(x, y float64) {
	if e == nil || e.state == Destroyed {
		return
	}
	if !e.variant.Inject(e.vp, x, y) {
		return
	}
	e.log.Debug("injected", "x", x, "y", y)
	if e.static {
		e.renderStatic()
	}
}

// OnResize re-reads the surface size and recreates the backing canvas. Population data is
// left alone.
func (e *Engine) OnResize() {
	if e == nil || e.state == Destroyed {
		return
	}
	e.allocate()
	e.log.Debug("resized", "width", e.vp.Width, "height", e.vp.Height)
	if e.vp.Empty() {
		return
	}
	if e.static {
		e.renderStatic()
		return
	}
	if e.variant.Repaint(e.canvas, e.vp) {
		e.draws++
	}
}

// AddObserver registers o for frame notifications.
func (e *Engine) AddObserver(o Observer) {
	if e == nil || e.state == Destroyed {
		return
	}
	e.observers = append(e.observers, o)
}

func (e *Engine) onMotionChange(reduced bool) {
	if e.state == Destroyed {
		return
	}
	e.log.Debug("motion preference changed", "reduced", reduced)
	if reduced {
		if e.state == Running {
			e.cancelFrame()
			e.state = Paused
			e.motionPaused = true
		}
		e.renderStatic()
		return
	}
	e.static = false
	if e.visible && (e.state == Ready || e.motionPaused) {
		e.Start()
	}
}

func (e *Engine) schedule() {
	if e.scheduled {
		return
	}
	e.frameID = e.host.Loop.Request(e.onFrame)
	e.scheduled = true
}

func (e *Engine) cancelFrame() {
	if !e.scheduled {
		return
	}
	e.host.Loop.Cancel(e.frameID)
	e.scheduled = false
}

func (e *Engine) onFrame(now time.Duration) {
	e.scheduled = false
	if e.state != Running {
		return
	}

	t := e.sched.Tick(now)
	if t.Execute {
		info := FrameInfo{Frame: t.Frame, Now: now, Primary: t.Primary, Refresh: t.Refresh}
		if t.Primary {
			e.variant.StepPrimary()
		}
		info.Pruned = e.variant.StepTracers()
		if t.Refresh {
			e.variant.Refresh()
			e.log.Debug("soft refresh", "frame", t.Frame)
		}
		info.Drawn = e.draw()
		for _, o := range e.observers {
			o.OnFrame(info)
		}
	}

	if e.state == Running {
		e.schedule()
	}
}

func (e *Engine) draw() bool {
	if e.variant.Draw(e.canvas, e.vp) {
		e.draws++
		return true
	}
	return false
}

func (e *Engine) renderStatic() {
	e.static = true
	if e.variant.DrawStatic(e.canvas, e.vp) {
		e.draws++
	}
	e.log.Debug("static frame rendered")
}

func (e *Engine) State() State {
	if e == nil {
		return Uninitialized
	}
	return e.state
}

// Draws returns how many frames have been drawn so far.
func (e *Engine) Draws() int {
	if e == nil {
		return 0
	}
	return e.draws
}

func (e *Engine) Frame() int {
	if e == nil {
		return 0
	}
	return e.sched.Frame()
}

func (e *Engine) Viewport() render.Viewport {
	if e == nil {
		return render.Viewport{}
	}
	return e.vp
}

func (e *Engine) Variant() Variant {
	if e == nil {
		return nil
	}
	return e.variant
}

func (e *Engine) Config() *config.Config {
	if e == nil {
		return nil
	}
	return e.cfg
}

// Static reports whether the last frame was the reduced-motion static render.
func (e *Engine) Static() bool {
	return e != nil && e.static
}
