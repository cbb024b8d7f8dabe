package dashboard

import (
	"sync"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/logger"
	"github.com/iceforge/skadimon/internal/stream"
	"github.com/iceforge/skadimon/internal/viewstate"
)

// WindowController owns the selected time window and the one series stream
// that polls it. A window change never retargets a running stream: the old
// one is detached and a new one is built for the new window.
type WindowController struct {
	src   stream.Source
	store *viewstate.Store
	opts  stream.Options
	log   logger.Logger

	mu      sync.Mutex
	started bool
	current *stream.Manager[api.Series]
	detach  func()
	// Detached streams whose requests may still be in flight. Each is
	// removed once its last request finishes.
	retired map[*stream.Manager[api.Series]]struct{}
}

// NewWindowController creates a controller that writes into store. Nothing
// is polled until Start.
func NewWindowController(src stream.Source, store *viewstate.Store, opts stream.Options) *WindowController {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	return &WindowController{
		src:     src,
		store:   store,
		opts:    opts,
		log:     log,
		retired: make(map[*stream.Manager[api.Series]]struct{}),
	}
}

// Start attaches a series stream for the store's current window.
func (c *WindowController) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true
	c.attach(c.store.Window())
}

// Window returns the selected window.
func (c *WindowController) Window() api.Window {
	return c.store.Window()
}

// SetWindow switches to w. It reports whether a switch happened; selecting
// the current window or an unknown one does nothing.
func (c *WindowController) SetWindow(w api.Window) bool {
	if !w.Valid() {
		c.log.Warn("ignoring unknown window %q", w)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if w == c.store.Window() {
		return false
	}

	c.stopCurrent()
	c.store.SwitchWindow(w)
	c.log.Debug("window switched to %s", w)
	if c.started {
		c.attach(w)
	}
	return true
}

// Cycle advances to the next window in display order and returns it.
func (c *WindowController) Cycle() api.Window {
	next := c.Window().Next()
	c.SetWindow(next)
	return next
}

// Stop detaches the current series stream. It's safe to call more than once.
func (c *WindowController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopCurrent()
	c.started = false
}

// Wait blocks until every request issued by any series stream this
// controller built has finished.
func (c *WindowController) Wait() {
	c.mu.Lock()
	managers := make([]*stream.Manager[api.Series], 0, len(c.retired)+1)
	for m := range c.retired {
		managers = append(managers, m)
	}
	if c.current != nil {
		managers = append(managers, c.current)
	}
	c.mu.Unlock()

	for _, m := range managers {
		m.Wait()
	}
}

func (c *WindowController) attach(w api.Window) {
	m := stream.NewSeries(c.src, w, c.opts)
	c.current = m
	c.detach = m.Attach(func(s api.Series) {
		c.store.SetSeries(w, s)
	})
}

func (c *WindowController) stopCurrent() {
	if c.current == nil {
		return
	}
	old := c.current
	c.detach()
	c.retired[old] = struct{}{}
	c.current = nil
	c.detach = nil

	go func() {
		old.Wait()
		c.mu.Lock()
		delete(c.retired, old)
		c.mu.Unlock()
	}()
}

// draining reports how many detached streams still have requests in flight.
func (c *WindowController) draining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.retired)
}
