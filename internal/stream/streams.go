package stream

import (
	"context"
	"time"

	"github.com/iceforge/skadimon/internal/api"
)

// Default cadences.
const (
	LiveCadence    = 3 * time.Second
	SeriesCadence  = 8 * time.Second
	HistoryCadence = 6 * time.Second
)

// Stream names as they appear in logs and stats.
const (
	NameLive    = "live"
	NameSeries  = "series"
	NameHistory = "history"
)

// Source is the backend the three streams poll. *api.Client implements it.
type Source interface {
	Live(ctx context.Context) (api.LiveMetrics, error)
	TimeSeries(ctx context.Context, w api.Window) (api.Series, error)
	History(ctx context.Context) (api.History, error)
}

func withDefaults(opts Options, name string, cadence time.Duration) Options {
	if opts.Interval <= 0 {
		opts.Interval = cadence
	}
	if opts.Name == "" {
		opts.Name = name
	}
	return opts
}

// NewLive creates the live KPI stream.
func NewLive(src Source, opts Options) *Manager[api.LiveMetrics] {
	return New(src.Live, withDefaults(opts, NameLive, LiveCadence))
}

// NewSeries creates a time-series stream bound to one window. A window
// change builds a new manager rather than mutating this one.
func NewSeries(src Source, w api.Window, opts Options) *Manager[api.Series] {
	fetch := func(ctx context.Context) (api.Series, error) {
		return src.TimeSeries(ctx, w)
	}
	return New(fetch, withDefaults(opts, NameSeries, SeriesCadence))
}

// NewHistory creates the query history stream.
func NewHistory(src Source, opts Options) *Manager[api.History] {
	return New(src.History, withDefaults(opts, NameHistory, HistoryCadence))
}

// SeriesCadenceOf returns the interval a series stream built with opts
// would poll at.
func SeriesCadenceOf(opts Options) time.Duration {
	return withDefaults(opts, NameSeries, SeriesCadence).Interval
}
