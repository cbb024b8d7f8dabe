package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/errors"
)

// Bounds enforced by Validate.
const (
	MinPollInterval = 250 * time.Millisecond
	MaxHistoryLimit = api.DefaultHistoryLimit
)

// ColorModes are the accepted values of output.color.
var ColorModes = []string{"auto", "always", "never"}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but skadimon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade skadimon or lower the version field")
	}

	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return err
	}

	if cfg.RequestTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			"request_timeout must be positive",
			"Try something like request_timeout: 10s")
	}

	if _, err := api.ParseWindow(cfg.DefaultWindow); err != nil {
		return err
	}

	if cfg.HistoryLimit < 1 || cfg.HistoryLimit > MaxHistoryLimit {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history_limit must be between 1 and %d, got %d", MaxHistoryLimit, cfg.HistoryLimit),
			"The server pages history 200 rows at a time")
	}

	if err := validatePolling(cfg.Polling); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'polling' section in your .skadimon.yaml.")
	}

	if cfg.Staleness.MissedTicks < 1 {
		return errors.New(errors.ErrConfig,
			"staleness.missed_ticks must be at least 1",
			"A stream is flagged stale after this many cadences without a successful poll")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'output' section in your .skadimon.yaml.")
	}

	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New(errors.ErrConfig,
			"base_url is not set",
			"Set base_url in .skadimon.yaml or pass --url")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("base_url %q is not an http(s) URL", raw),
			"Use something like http://skadi.internal:8080")
	}
	return nil
}

func validatePolling(p PollingConfig) error {
	intervals := []struct {
		key string
		val time.Duration
	}{
		{"polling.live", p.Live},
		{"polling.series", p.Series},
		{"polling.history", p.History},
	}
	for _, iv := range intervals {
		if iv.val < MinPollInterval {
			return fmt.Errorf("%s must be at least %s, got %s", iv.key, MinPollInterval, iv.val)
		}
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	for _, mode := range ColorModes {
		if o.Color == mode {
			return nil
		}
	}
	return fmt.Errorf("output.color must be one of auto, always, never; got %q", o.Color)
}
