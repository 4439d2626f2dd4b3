package engine

import "sync"

// MotionSwitch is a MotionPreference the host flips directly.
type MotionSwitch struct {
	mu      sync.Mutex
	reduced bool
	next    int
	subs    map[int]func(bool)
}

func NewMotionSwitch(reduced bool) *MotionSwitch {
	return &MotionSwitch{reduced: reduced, subs: make(map[int]func(bool))}
}

func (m *MotionSwitch) ReducedMotion() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reduced
}

func (m *MotionSwitch) Subscribe(fn func(bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Set changes the preference and notifies subscribers when it actually changes.
func (m *MotionSwitch) Set(reduced bool) {
	m.mu.Lock()
	if m.reduced == reduced {
		m.mu.Unlock()
		return
	}
	m.reduced = reduced
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()
	for _, fn := range subs {
		fn(reduced)
	}
}

func (m *MotionSwitch) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// EventBus is an EventSource hosts feed with Resize and Click.
type EventBus struct {
	mu     sync.Mutex
	next   int
	resize map[int]func()
	click  map[int]func(x, y float64)
}

func NewEventBus() *EventBus {
	return &EventBus{
		resize: make(map[int]func()),
		click:  make(map[int]func(x, y float64)),
	}
}

func (b *EventBus) OnResize(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.resize[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.resize, id)
		b.mu.Unlock()
	}
}

func (b *EventBus) OnClick(fn func(x, y float64)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.click[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.click, id)
		b.mu.Unlock()
	}
}

func (b *EventBus) Resize() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.resize))
	for _, fn := range b.resize {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (b *EventBus) Click(x, y float64) {
	b.mu.Lock()
	fns := make([]func(float64, float64), 0, len(b.click))
	for _, fn := range b.click {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(x, y)
	}
}

// Listeners returns the number of registered resize and click handlers.
func (b *EventBus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.resize) + len(b.click)
}
