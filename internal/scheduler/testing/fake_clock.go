// Package testing provides test doubles for the scheduler package.
package testing

import (
	"sync"
	"time"

	"github.com/iceforge/skadimon/internal/scheduler"
)

// FakeClock hands out tickers that only fire when Tick is called.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
}

// NewFakeClock creates a fake clock starting at the given time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// NewTicker implements scheduler.Clock.
func (c *FakeClock) NewTicker(d time.Duration) scheduler.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTicker{
		Interval: d,
		ch:       make(chan time.Time),
		stopped:  make(chan struct{}),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Tick advances the clock by d and delivers one tick to every live ticker.
// It blocks until each ticker's receiver has taken the tick or the ticker
// was stopped.
func (c *FakeClock) Tick(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	tickers := make([]*FakeTicker, len(c.tickers))
	copy(tickers, c.tickers)
	c.mu.Unlock()

	for _, t := range tickers {
		select {
		case t.ch <- now:
		case <-t.stopped:
		}
	}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Tickers returns every ticker created so far, including stopped ones.
func (c *FakeClock) Tickers() []*FakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*FakeTicker, len(c.tickers))
	copy(out, c.tickers)
	return out
}

// FakeTicker is a ticker driven by FakeClock.Tick.
type FakeTicker struct {
	Interval time.Duration

	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

// C implements scheduler.Ticker.
func (t *FakeTicker) C() <-chan time.Time { return t.ch }

// Stop implements scheduler.Ticker.
func (t *FakeTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

// IsStopped reports whether Stop was called.
func (t *FakeTicker) IsStopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}
