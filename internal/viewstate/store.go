// Package viewstate holds the single snapshot the renderer reads:
// live KPIs, the duration series, query history and the selected window.
//
// Each slice has exactly one writer. The live stream calls SetLive, the
// current series stream calls SetSeries, the history stream calls SetHistory,
// and the window controller calls SwitchWindow. Writes replace a slice
// wholesale and never touch the others.
package viewstate

import (
	"sync"
	"time"

	"github.com/iceforge/skadimon/internal/api"
)

// ViewState is one consistent snapshot. Slices are shared with the store and
// must be treated as read-only.
type ViewState struct {
	Live    api.LiveMetrics
	Series  api.Series
	History api.History
	Window  api.Window

	// When each slice was last replaced by a successful poll. Zero until
	// the first one lands (and, for Series, after every window switch).
	LiveAt    time.Time
	SeriesAt  time.Time
	HistoryAt time.Time
}

// Store owns the ViewState.
type Store struct {
	mu      sync.RWMutex
	state   ViewState
	version uint64
	changes chan struct{}
	now     func() time.Time
}

// New creates a store holding empty placeholders for window w.
func New(w api.Window) *Store {
	if !w.Valid() {
		w = api.DefaultWindow
	}
	return &Store{
		state: ViewState{
			Series:  api.Series{},
			History: api.History{},
			Window:  w,
		},
		changes: make(chan struct{}, 1),
		now:     time.Now,
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Window returns the currently selected window.
func (s *Store) Window() api.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Window
}

// Version increases by one on every accepted write.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Changes delivers a signal after writes. Signals coalesce: a reader that
// falls behind sees one pending signal, then reads the latest Snapshot.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// SetLive replaces the live KPIs.
func (s *Store) SetLive(live api.LiveMetrics) {
	s.mu.Lock()
	s.state.Live = live
	s.state.LiveAt = s.now()
	s.version++
	s.mu.Unlock()
	s.notify()
}

// SetSeries replaces the series if it was fetched for the current window.
// It reports whether the write was accepted.
func (s *Store) SetSeries(w api.Window, series api.Series) bool {
	if series == nil {
		series = api.Series{}
	}

	s.mu.Lock()
	if w != s.state.Window {
		s.mu.Unlock()
		return false
	}
	s.state.Series = series
	s.state.SeriesAt = s.now()
	s.version++
	s.mu.Unlock()
	s.notify()
	return true
}

// SetHistory replaces the query history.
func (s *Store) SetHistory(history api.History) {
	if history == nil {
		history = api.History{}
	}

	s.mu.Lock()
	s.state.History = history
	s.state.HistoryAt = s.now()
	s.version++
	s.mu.Unlock()
	s.notify()
}

// SwitchWindow selects w and clears the series so data from the previous
// window is never shown under the new label. It's a no-op when w is
// already selected, and reports whether anything changed.
func (s *Store) SwitchWindow(w api.Window) bool {
	s.mu.Lock()
	if w == s.state.Window {
		s.mu.Unlock()
		return false
	}
	s.state.Window = w
	s.state.Series = api.Series{}
	s.state.SeriesAt = time.Time{}
	s.version++
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
