package engine

import "time"

// Tick is the scheduler's decision for one frame callback.
type Tick struct {
	Execute bool
	Frame   int
	Primary bool
	Refresh bool
}

// Scheduler throttles frame callbacks to a target rate and decides which steps each
// executed frame performs. It holds no reference to the population.
type Scheduler struct {
	interval   time.Duration
	perStep    int
	refresh    time.Duration
	startDelay time.Duration

	started     bool
	armedAt     time.Duration
	armed       bool
	lastExec    time.Duration
	lastRefresh time.Duration
	timed       bool
	frame       int

	Skipped int
}

// NewScheduler builds a scheduler. targetFPS and framesPerIteration below 1 are treated as 1.
func NewScheduler(targetFPS, framesPerIteration int, refresh, startDelay time.Duration) *Scheduler {
	if targetFPS < 1 {
		targetFPS = 1
	}
	if framesPerIteration < 1 {
		framesPerIteration = 1
	}
	return &Scheduler{
		interval:   time.Second / time.Duration(targetFPS),
		perStep:    framesPerIteration,
		refresh:    refresh,
		startDelay: startDelay,
	}
}

// Tick decides what the callback at now should do.
func (s *Scheduler) Tick(now time.Duration) Tick {
	if s.startDelay > 0 {
		if !s.armed {
			s.armed = true
			s.armedAt = now
		}
		if now-s.armedAt < s.startDelay {
			s.Skipped++
			return Tick{}
		}
		s.startDelay = 0
	}

	if s.started && now-s.lastExec < s.interval {
		s.Skipped++
		return Tick{}
	}
	s.started = true
	if !s.timed {
		s.timed = true
		s.lastRefresh = now
	}
	s.lastExec = now
	s.frame++

	t := Tick{Execute: true, Frame: s.frame, Primary: s.frame%s.perStep == 0}
	if s.refresh > 0 && now-s.lastRefresh >= s.refresh {
		t.Refresh = true
		s.lastRefresh = now
	}
	return t
}

// Resume forgets the last execution time so the next callback runs immediately. The frame
// counter and refresh timer are kept.
func (s *Scheduler) Resume() {
	s.started = false
}

// Reset rewinds the frame counter and refresh timer.
func (s *Scheduler) Reset() {
	s.started = false
	s.timed = false
	s.frame = 0
}

func (s *Scheduler) Frame() int              { return s.frame }
func (s *Scheduler) Interval() time.Duration { return s.interval }
