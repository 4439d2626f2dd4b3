package engine

import (
	"sync"
	"time"
)

// ManualLoop is a FrameLoop driven by explicit Pump calls. Terminal, window and headless
// hosts pump it from their own main loops.
type ManualLoop struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]func(time.Duration)
	order   []FrameID
}

func NewManualLoop() *ManualLoop {
	return &ManualLoop{pending: make(map[FrameID]func(time.Duration))}
}

func (l *ManualLoop) Request(cb func(now time.Duration)) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.pending[l.next] = cb
	l.order = append(l.order, l.next)
	return l.next
}

func (l *ManualLoop) Cancel(id FrameID) {
	l.mu.Lock()
	delete(l.pending, id)
	l.mu.Unlock()
}

// Pump runs every callback pending at the time of the call with timestamp now and returns
// how many ran. Callbacks requested while pumping wait for the next Pump.
func (l *ManualLoop) Pump(now time.Duration) int {
	l.mu.Lock()
	ids := l.order
	l.order = nil
	var cbs []func(time.Duration)
	for _, id := range ids {
		if cb, ok := l.pending[id]; ok {
			cbs = append(cbs, cb)
			delete(l.pending, id)
		}
	}
	l.mu.Unlock()

	for _, cb := range cbs {
		cb(now)
	}
	return len(cbs)
}

// Pending returns the number of callbacks waiting to run.
func (l *ManualLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
