package xsnow

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the delay between the end of one frame and the start of
// the next.
const DefaultInterval = 15 * time.Millisecond

// Scheduler runs a step function at a fixed cadence while visible. At most
// one loop goroutine exists at a time: repeated Start calls do not stack
// loops, and Stop returns only after the loop has exited, so no step begins
// after Stop returns.
type Scheduler struct {
	interval time.Duration
	step     func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}

	frames atomic.Uint64
}

// NewScheduler creates a stopped scheduler. A non-positive interval uses
// DefaultInterval.
func NewScheduler(interval time.Duration, step func()) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{interval: interval, step: step}
}

// Interval returns the delay between frames.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// SetVisible starts the loop when visible and stops it otherwise.
func (s *Scheduler) SetVisible(visible bool) {
	if visible {
		s.Start()
	} else {
		s.Stop()
	}
}

// Start begins the loop. The first step runs immediately. Starting a running
// scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

// Stop cancels the pending step and waits for an in-flight step to finish.
// Stopping a stopped scheduler is a no-op. Stop must not be called from the
// step function.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// Frames returns the number of steps run since creation.
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}

func (s *Scheduler) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}
		// Both channels may be ready at once; cancellation wins.
		select {
		case <-stop:
			return
		default:
		}

		s.step()
		s.frames.Add(1)
		timer.Reset(s.interval)
	}
}
