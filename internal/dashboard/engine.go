// Package dashboard wires the polling streams, the window controller and
// the view state into one engine the renderer can drive.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/logger"
	"github.com/iceforge/skadimon/internal/scheduler"
	"github.com/iceforge/skadimon/internal/stream"
	"github.com/iceforge/skadimon/internal/viewstate"
)

// Config tunes an Engine. Zero values fall back to the default cadences and
// window.
type Config struct {
	Window          api.Window
	LiveInterval    time.Duration
	SeriesInterval  time.Duration
	HistoryInterval time.Duration
	DiscardStale    bool

	Scheduler *scheduler.Scheduler
	Logger    logger.Logger
}

// Engine runs the three streams against one Store.
type Engine struct {
	store   *viewstate.Store
	stats   *stream.Stats
	live    *stream.Manager[api.LiveMetrics]
	history *stream.Manager[api.History]
	windows *WindowController
	log     logger.Logger
	cancel  context.CancelFunc

	mu            sync.Mutex
	started       bool
	stopped       bool
	detachLive    func()
	detachHistory func()
}

// NewEngine builds an engine polling src. Call Start to begin polling.
func NewEngine(src stream.Source, cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = logger.Noop()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = scheduler.New(nil)
	}

	// Cancelled only on Stop, so a detach never aborts a request.
	ctx, cancel := context.WithCancel(context.Background())

	store := viewstate.New(cfg.Window)
	stats := stream.NewStats()
	base := stream.Options{
		Scheduler:    cfg.Scheduler,
		Observer:     stats,
		Logger:       cfg.Logger,
		DiscardStale: cfg.DiscardStale,
		Context:      ctx,
	}

	liveOpts := base
	liveOpts.Interval = cfg.LiveInterval
	seriesOpts := base
	seriesOpts.Interval = cfg.SeriesInterval
	historyOpts := base
	historyOpts.Interval = cfg.HistoryInterval

	return &Engine{
		store:   store,
		stats:   stats,
		live:    stream.NewLive(src, liveOpts),
		history: stream.NewHistory(src, historyOpts),
		windows: NewWindowController(src, store, seriesOpts),
		log:     cfg.Logger,
		cancel:  cancel,
	}
}

// Start begins polling all three streams. Calling it again, or after Stop,
// does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true

	e.detachLive = e.live.Attach(e.store.SetLive)
	e.detachHistory = e.history.Attach(e.store.SetHistory)
	e.windows.Start()
	e.log.Info("polling live every %s, series every %s, history every %s",
		e.live.Interval(), stream.SeriesCadenceOf(e.windows.opts), e.history.Interval())
}

// Stop detaches every stream and cancels outstanding requests. No store
// write happens after it returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	detachLive, detachHistory := e.detachLive, e.detachHistory
	e.mu.Unlock()

	if detachLive != nil {
		detachLive()
	}
	if detachHistory != nil {
		detachHistory()
	}
	e.windows.Stop()
	e.cancel()
}

// Wait blocks until every request issued so far has returned.
func (e *Engine) Wait() {
	e.live.Wait()
	e.history.Wait()
	e.windows.Wait()
}

// SetWindow selects w; see WindowController.SetWindow.
func (e *Engine) SetWindow(w api.Window) bool {
	return e.windows.SetWindow(w)
}

// CycleWindow moves to the next window and returns it.
func (e *Engine) CycleWindow() api.Window {
	return e.windows.Cycle()
}

// Window returns the selected window.
func (e *Engine) Window() api.Window {
	return e.windows.Window()
}

// Store returns the view state the engine writes into.
func (e *Engine) Store() *viewstate.Store {
	return e.store
}

// Stats returns the per-stream poll counters.
func (e *Engine) Stats() *stream.Stats {
	return e.stats
}

// Cadences returns the polling interval of each stream, by stream name.
func (e *Engine) Cadences() map[string]time.Duration {
	return map[string]time.Duration{
		stream.NameLive:    e.live.Interval(),
		stream.NameSeries:  stream.SeriesCadenceOf(e.windows.opts),
		stream.NameHistory: e.history.Interval(),
	}
}
