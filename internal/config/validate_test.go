package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceforge/skadimon/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"future version", func(c *Config) { c.Version = 99 }, "from the future"},
		{"missing url", func(c *Config) { c.BaseURL = "" }, "base_url is not set"},
		{"url without scheme", func(c *Config) { c.BaseURL = "skadi:8080" }, "not an http(s) URL"},
		{"ftp url", func(c *Config) { c.BaseURL = "ftp://skadi" }, "not an http(s) URL"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request_timeout"},
		{"bad window", func(c *Config) { c.DefaultWindow = "2d" }, "2d"},
		{"history limit too large", func(c *Config) { c.HistoryLimit = 500 }, "history_limit"},
		{"history limit zero", func(c *Config) { c.HistoryLimit = 0 }, "history_limit"},
		{"poll too fast", func(c *Config) { c.Polling.Series = 10 * time.Millisecond }, "polling.series"},
		{"missed ticks", func(c *Config) { c.Staleness.MissedTicks = 0 }, "missed_ticks"},
		{"color mode", func(c *Config) { c.Output.Color = "rainbow" }, "output.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_AcceptsHTTPS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://skadi.example.com"
	assert.NoError(t, Validate(cfg))
}
