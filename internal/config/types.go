package config

import (
	"time"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/stream"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults for values not set in the config file.
const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultMissedTicks = 3
	DefaultColor       = "auto"
)

// Config represents the complete .skadimon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// BaseURL is the Skadi server the dashboard polls.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// RequestTimeout bounds every HTTP request, including ones still in
	// flight after their stream was detached.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// DefaultWindow is the time window selected at startup.
	DefaultWindow string `yaml:"default_window" mapstructure:"default_window"`

	// HistoryLimit is the history page size requested from the server.
	HistoryLimit int `yaml:"history_limit" mapstructure:"history_limit"`

	Polling   PollingConfig   `yaml:"polling" mapstructure:"polling"`
	Staleness StalenessConfig `yaml:"staleness" mapstructure:"staleness"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// PollingConfig sets the cadence of each stream.
type PollingConfig struct {
	Live    time.Duration `yaml:"live" mapstructure:"live"`
	Series  time.Duration `yaml:"series" mapstructure:"series"`
	History time.Duration `yaml:"history" mapstructure:"history"`

	// DiscardStale drops a response when a newer one from the same stream
	// has already been applied. Off means the last response to arrive wins.
	DiscardStale bool `yaml:"discard_stale" mapstructure:"discard_stale"`
}

// StalenessConfig controls the freshness badges.
type StalenessConfig struct {
	// MissedTicks is how many cadences may pass without a successful poll
	// before a stream is flagged stale.
	MissedTicks int `yaml:"missed_ticks" mapstructure:"missed_ticks"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	// Color is auto, always or never.
	Color string `yaml:"color" mapstructure:"color"`
}

// Window returns the parsed default window, falling back to api.DefaultWindow.
func (c *Config) Window() api.Window {
	w, err := api.ParseWindow(c.DefaultWindow)
	if err != nil {
		return api.DefaultWindow
	}
	return w
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		BaseURL:        DefaultBaseURL,
		RequestTimeout: api.DefaultTimeout,
		DefaultWindow:  string(api.DefaultWindow),
		HistoryLimit:   api.DefaultHistoryLimit,
		Polling: PollingConfig{
			Live:    stream.LiveCadence,
			Series:  stream.SeriesCadence,
			History: stream.HistoryCadence,
		},
		Staleness: StalenessConfig{
			MissedTicks: DefaultMissedTicks,
		},
		Output: OutputConfig{
			Color: DefaultColor,
		},
	}
}
