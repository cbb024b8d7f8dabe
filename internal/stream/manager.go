// Package stream turns a fetch function and a cadence into one supervised
// polling loop.
//
// A Manager ticks on a scheduler, issues one request per tick on its own
// goroutine, and hands successful results to the onSuccess callback given to
// Attach. Transport, HTTP and decode failures are soft: they go to the
// Observer and the debug log, never to onSuccess or a caller, and the next
// tick happens on schedule regardless.
//
// Ticks may overlap when a request outlives the cadence, so responses can
// complete out of issue order. By default the last one to complete wins.
// With DiscardStale set, a response older than one already applied is
// dropped instead.
package stream

import (
	"context"
	"sync"
	"time"

	"github.com/iceforge/skadimon/internal/errors"
	"github.com/iceforge/skadimon/internal/logger"
	"github.com/iceforge/skadimon/internal/scheduler"
)

// FetchFunc performs one request and decodes its payload.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Options configures a Manager.
type Options struct {
	Name         string
	Interval     time.Duration
	Scheduler    *scheduler.Scheduler
	Observer     Observer
	Logger       logger.Logger
	DiscardStale bool

	// Context is the parent of every request. Detach does not cancel it.
	Context context.Context
}

type attachState int

const (
	stateIdle attachState = iota
	stateAttached
	stateDetached
)

// Manager polls one endpoint on a fixed cadence.
type Manager[T any] struct {
	name         string
	interval     time.Duration
	fetch        FetchFunc[T]
	sched        *scheduler.Scheduler
	observer     Observer
	log          logger.Logger
	discardStale bool
	ctx          context.Context

	mu        sync.Mutex
	state     attachState
	onSuccess func(T)
	handle    *scheduler.Handle
	issued    uint64
	applied   uint64

	inflight sync.WaitGroup
}

// New creates a detached manager.
func New[T any](fetch FetchFunc[T], opts Options) *Manager[T] {
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.New(nil)
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Manager[T]{
		name:         opts.Name,
		interval:     opts.Interval,
		fetch:        fetch,
		sched:        opts.Scheduler,
		observer:     opts.Observer,
		log:          opts.Logger,
		discardStale: opts.DiscardStale,
		ctx:          opts.Context,
	}
}

// Name returns the stream name used in logs and stats.
func (m *Manager[T]) Name() string {
	return m.name
}

// Interval returns the polling cadence.
func (m *Manager[T]) Interval() time.Duration {
	return m.interval
}

// Attach starts polling and delivers each successful result to onSuccess.
// The first request goes out immediately. The returned detach stops polling
// and is safe to call more than once; once it returns, onSuccess is never
// invoked again, even for requests that were still in flight.
//
// A manager can be attached only once. onSuccess must not call detach.
func (m *Manager[T]) Attach(onSuccess func(T)) (detach func()) {
	m.mu.Lock()
	if m.state != stateIdle {
		m.mu.Unlock()
		m.log.Warn("%s: attach called on a manager that was already attached", m.name)
		return func() {}
	}
	m.state = stateAttached
	m.onSuccess = onSuccess
	m.handle = m.sched.Start(m.interval, m.tick)
	m.mu.Unlock()

	m.log.Debug("%s: attached, polling every %s", m.name, m.interval)

	var once sync.Once
	return func() { once.Do(m.detach) }
}

func (m *Manager[T]) detach() {
	m.mu.Lock()
	m.state = stateDetached
	h := m.handle
	m.mu.Unlock()

	// Stop outside m.mu: a tick in progress holds the handle lock and may
	// be waiting on m.mu.
	if h != nil {
		h.Stop()
	}
	m.log.Debug("%s: detached", m.name)
}

// Attached reports whether the manager is currently polling.
func (m *Manager[T]) Attached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateAttached
}

// Wait blocks until every request issued so far has finished.
func (m *Manager[T]) Wait() {
	m.inflight.Wait()
}

// tick dispatches one request. It runs on the scheduler goroutine and must
// not block.
func (m *Manager[T]) tick() {
	m.mu.Lock()
	if m.state != stateAttached {
		m.mu.Unlock()
		return
	}
	m.issued++
	seq := m.issued
	m.inflight.Add(1)
	m.mu.Unlock()

	go m.poll(seq)
}

func (m *Manager[T]) poll(seq uint64) {
	defer m.inflight.Done()

	start := time.Now()
	result, err := m.fetch(m.ctx)
	latency := time.Since(start)

	if err != nil {
		kind := errors.CodeOf(err)
		m.log.Debug("%s: poll #%d failed (%s): %v", m.name, seq, kind, err)
		m.observer.PollFailed(m.name, kind, err)
		return
	}

	if reason := m.deliver(seq, result); reason != "" {
		m.log.Debug("%s: dropped response #%d: %s", m.name, seq, reason)
		m.observer.ResponseDiscarded(m.name, reason)
		return
	}
	m.observer.PollSucceeded(m.name, latency)
}

// deliver hands result to onSuccess unless the manager was detached or the
// response is stale. It returns the reason when the result was dropped.
// Holding m.mu across onSuccess is what lets detach guarantee no late writes.
func (m *Manager[T]) deliver(seq uint64, result T) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != stateAttached {
		return "detached"
	}
	if m.discardStale && seq < m.applied {
		return "stale"
	}
	if seq > m.applied {
		m.applied = seq
	}
	m.onSuccess(result)
	return ""
}
