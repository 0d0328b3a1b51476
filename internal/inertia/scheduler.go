package inertia

import (
	"sync"
	"sync/atomic"
	"time"

	"sphereview/internal/timeutil"
)

// Scheduler is the host's tick facility. Every runs fn repeatedly at the
// given interval until the returned cancel func is called. Once cancel
// returns, fn must not run again, including ticks already queued.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

type frameTask struct {
	interval  time.Duration
	elapsed   time.Duration
	fn        func()
	cancelled bool
}

// FrameScheduler runs callbacks from the host's own frame loop. Nothing
// happens until Advance or Step is called, so it suits UI loops and tests.
// It is not safe for concurrent use.
type FrameScheduler struct {
	tasks []*frameTask
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := &frameTask{interval: interval, fn: fn}
	s.tasks = append(s.tasks, t)
	return func() { t.cancelled = true }
}

// Advance moves frame time forward by d and runs every task once per whole
// interval elapsed.
func (s *FrameScheduler) Advance(d time.Duration) {
	for _, t := range s.snapshot() {
		t.elapsed += d
		for t.elapsed >= t.interval && !t.cancelled {
			t.elapsed -= t.interval
			t.fn()
		}
	}
	s.prune()
}

// Step runs every live task exactly once, ignoring intervals.
func (s *FrameScheduler) Step() {
	for _, t := range s.snapshot() {
		if !t.cancelled {
			t.fn()
		}
	}
	s.prune()
}

// Pending returns the number of live tasks.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *FrameScheduler) snapshot() []*frameTask {
	return append([]*frameTask(nil), s.tasks...)
}

func (s *FrameScheduler) prune() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// ClockScheduler runs callbacks from clock tickers on their own goroutines.
// Each callback runs while holding mu, the same lock the host takes around
// gesture events, so ticks and gestures never interleave.
type ClockScheduler struct {
	clock timeutil.Clock
	mu    sync.Locker
}

func NewClockScheduler(clock timeutil.Clock, mu sync.Locker) *ClockScheduler {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &ClockScheduler{clock: clock, mu: mu}
}

// Every starts a ticker goroutine. The returned cancel never blocks, so it
// may be called with mu held, including from inside fn.
func (s *ClockScheduler) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := s.clock.NewTicker(interval)
	stop := make(chan struct{})
	var cancelled atomic.Bool

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				s.mu.Lock()
				if !cancelled.Load() {
					fn()
				}
				s.mu.Unlock()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelled.Store(true)
			close(stop)
		})
	}
}
