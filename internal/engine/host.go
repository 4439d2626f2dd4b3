package engine

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/phaseviz/internal/render"
)

type FrameID uint64

// FrameLoop schedules one-shot frame callbacks.
type FrameLoop interface {
	Request(cb func(now time.Duration)) FrameID
	Cancel(id FrameID)
}

// Surface is the host's drawing area.
type Surface interface {
	// Size reports the current logical size of the container.
	Size() (width, height float64)
	PixelRatio() float64
	// Allocate recreates the backing store for vp and returns the canvas to draw on.
	Allocate(vp render.Viewport) render.Canvas
}

// MotionPreference is the user's reduced-motion setting.
type MotionPreference interface {
	ReducedMotion() bool
	Subscribe(fn func(reduced bool)) (cancel func())
}

// EventSource delivers resize and pointer events from the host.
type EventSource interface {
	OnResize(fn func()) (cancel func())
	OnClick(fn func(x, y float64)) (cancel func())
}

// Host bundles the collaborators an Engine consumes. Surface and Loop are required.
type Host struct {
	Surface Surface
	Loop    FrameLoop
	Motion  MotionPreference
	Events  EventSource

	Logger   *slog.Logger
	Rand     *rand.Rand
	Registry *Registry
}
