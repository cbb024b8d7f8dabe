// Package scheduler provides a repeating-task primitive with start/stop
// semantics. It only manages timing: it knows nothing about fetching,
// decoding, or error handling.
package scheduler

import (
	"sync"
	"time"
)

// MinInterval is the floor applied to non-positive or tiny intervals.
const MinInterval = time.Millisecond

// Ticker is the subset of time.Ticker the scheduler needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests substitute a fake to drive ticks by hand.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// RealClock returns a Clock backed by time.NewTicker.
func RealClock() Clock {
	return realClock{}
}

// Scheduler starts repeating tasks on a clock.
type Scheduler struct {
	clock Clock
}

// New creates a scheduler. A nil clock uses the real clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler{clock: clock}
}

// Handle controls one repeating task started by Start.
type Handle struct {
	mu      sync.Mutex
	stopped bool
	task    func()
	ticker  Ticker
	done    chan struct{}
}

// Start invokes task once right away, then once every interval until the
// returned handle is stopped. Each handle runs independently of the others.
//
// Invocations of one handle never run concurrently with each other, so task
// should only dispatch work and return quickly. task must not call Stop on
// its own handle.
func (s *Scheduler) Start(interval time.Duration, task func()) *Handle {
	if interval < MinInterval {
		interval = MinInterval
	}

	h := &Handle{
		task:   task,
		ticker: s.clock.NewTicker(interval),
		done:   make(chan struct{}),
	}

	go h.loop()
	return h
}

func (h *Handle) loop() {
	if !h.fire() {
		return
	}
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C():
			if !h.fire() {
				return
			}
		}
	}
}

// fire runs the task unless the handle was stopped. It holds the handle
// lock for the duration of the call so Stop can't return mid-invocation.
func (h *Handle) fire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	h.task()
	return true
}

// Stop prevents any further invocation from beginning. An invocation that is
// executing when Stop is called is allowed to finish first. Safe to call
// more than once.
func (h *Handle) Stop() {
	h.mu.Lock()
	already := h.stopped
	h.stopped = true
	h.mu.Unlock()

	if already {
		return
	}
	h.ticker.Stop()
	close(h.done)
}

// Stopped reports whether Stop has been called.
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}
