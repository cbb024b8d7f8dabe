package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, 3*time.Second, cfg.Polling.Live)
	assert.Equal(t, 8*time.Second, cfg.Polling.Series)
	assert.Equal(t, 6*time.Second, cfg.Polling.History)
	assert.False(t, cfg.Polling.DiscardStale)
	assert.Equal(t, 200, cfg.HistoryLimit)
	assert.Equal(t, api.Window1h, cfg.Window())
	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `version: 1
base_url: http://skadi.internal:9090/
default_window: 6h
request_timeout: 4s
polling:
  live: 1s
  discard_stale: true
staleness:
  missed_ticks: 5
output:
  color: NEVER
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://skadi.internal:9090", cfg.BaseURL)
	assert.Equal(t, api.Window6h, cfg.Window())
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Second, cfg.Polling.Live)
	assert.Equal(t, 8*time.Second, cfg.Polling.Series, "unset keys keep defaults")
	assert.True(t, cfg.Polling.DiscardStale)
	assert.Equal(t, 5, cfg.Staleness.MissedTicks)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "base_url: http://from-file:8080\n")
	t.Setenv("SKADIMON_BASE_URL", "http://from-env:8080")
	t.Setenv("SKADIMON_POLLING_HISTORY", "12s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:8080", cfg.BaseURL)
	assert.Equal(t, 12*time.Second, cfg.Polling.History)
}

func TestLoad_ExpandsBaseURL(t *testing.T) {
	t.Setenv("SKADI_HOST", "skadi-7")
	path := writeConfig(t, "base_url: http://${SKADI_HOST}:8080\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://skadi-7:8080", cfg.BaseURL)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	path := writeConfig(t, "polling: [not, a, map\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind_Explicit(t *testing.T) {
	path := writeConfig(t, "version: 1\n")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = Find(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1\n"), 0644))
	t.Chdir(dir)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(found))
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("SKADIMON_DEFAULT_WINDOW", "15m")

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, api.Window15m, cfg.Window())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandTilde(""))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "x.yaml"), ExpandTilde("~/x.yaml"))
	assert.Equal(t, "/abs/x", ExpandTilde("/abs/x"))
}

func TestIsKey(t *testing.T) {
	assert.True(t, IsKey("polling.live"))
	assert.True(t, IsKey("output.color"))
	assert.False(t, IsKey("polling"))
	assert.False(t, IsKey("hosts.mini"))
}

func TestKeysHaveDefaults(t *testing.T) {
	v := newViper()
	for _, key := range Keys {
		assert.True(t, v.IsSet(key), "%s should have a default", key)
	}
}
