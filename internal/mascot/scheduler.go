package mascot

import (
	"sync"
	"time"
)

// Scheduler abstracts the host's frame and delay primitives so the
// controller is independent of any particular UI runtime. Tick arranges fn
// to run once per frame until the returned cancel is called; After runs fn
// once after d unless canceled first.
type Scheduler interface {
	Tick(fn func()) (cancel func())
	After(d time.Duration, fn func()) (cancel func())
}

// FrameScheduler drives ticks from real timers. It is the default scheduler
// for hosts without their own frame loop.
type FrameScheduler struct {
	interval time.Duration
}

func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &FrameScheduler{interval: interval}
}

func (s *FrameScheduler) Tick(fn func()) (cancel func()) {
	var mu sync.Mutex
	var timer *time.Timer
	stopped := false

	var arm func()
	arm = func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		timer = time.AfterFunc(s.interval, func() {
			fn()
			arm()
		})
	}
	arm()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
}

func (s *FrameScheduler) After(d time.Duration, fn func()) (cancel func()) {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// ManualScheduler is pumped by the host: Step fires one frame, Advance moves
// the virtual clock and fires due delays. The TUI uses it to keep every
// callback on its own update loop; tests use it for deterministic stepping.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	ticks  map[int]func()
	timers map[int]manualTimer
}

type manualTimer struct {
	due time.Duration
	fn  func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		ticks:  make(map[int]func()),
		timers: make(map[int]manualTimer),
	}
}

func (s *ManualScheduler) Tick(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.ticks[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.ticks, id)
		s.mu.Unlock()
	}
}

func (s *ManualScheduler) After(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.timers[id] = manualTimer{due: s.now + d, fn: fn}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
	}
}

// Step fires every registered frame callback once.
func (s *ManualScheduler) Step() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.ticks))
	for _, fn := range s.ticks {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Advance moves the virtual clock forward and fires delays that came due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []func()
	for id, t := range s.timers {
		if t.due <= s.now {
			due = append(due, t.fn)
			delete(s.timers, id)
		}
	}
	s.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// Pending reports how many frame callbacks are still registered.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ticks)
}
