package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/iceforge/skadimon/internal/config"
	"github.com/iceforge/skadimon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit_WritesProjectFile(t *testing.T) {
	dir := isolate(t)
	urlFlag = "http://skadi.internal:8080/"

	var out bytes.Buffer
	require.NoError(t, configInitCommand(&out, false, false))

	path := filepath.Join(dir, config.ConfigFileName)
	assert.Contains(t, out.String(), "Wrote "+config.ConfigFileName)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://skadi.internal:8080", cfg.BaseURL)
	assert.NoError(t, config.Validate(cfg))
}

func TestConfigInit_Global(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, configInitCommand(&bytes.Buffer{}, true, false))

	_, err := os.Stat(filepath.Join(dir, config.GlobalConfigDir, config.GlobalConfigFile))
	assert.NoError(t, err)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	isolate(t)

	require.NoError(t, configInitCommand(&bytes.Buffer{}, false, false))
	err := configInitCommand(&bytes.Buffer{}, false, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	assert.NoError(t, configInitCommand(&bytes.Buffer{}, false, true))
}

func TestConfigInit_RejectsBadURL(t *testing.T) {
	isolate(t)
	urlFlag = "ftp://nope"

	err := configInitCommand(&bytes.Buffer{}, false, false)
	require.Error(t, err)
	_, statErr := os.Stat(config.ConfigFileName)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfigSet(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, configInitCommand(&bytes.Buffer{}, false, false))

	var out bytes.Buffer
	require.NoError(t, configSetCommand(&out, "default_window", "6h"))
	assert.Contains(t, out.String(), "default_window = 6h")

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "6h", cfg.DefaultWindow)
}

func TestConfigSet_InvalidValueRestoresFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, configInitCommand(&bytes.Buffer{}, false, false))
	path := filepath.Join(dir, config.ConfigFileName)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = configSetCommand(&bytes.Buffer{}, "polling.live", "10ms")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestConfigSet_UnknownKey(t *testing.T) {
	isolate(t)

	err := configSetCommand(&bytes.Buffer{}, "hosts.mini", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "isn't a config key")
}

func TestConfigSet_NoFile(t *testing.T) {
	isolate(t)

	err := configSetCommand(&bytes.Buffer{}, "default_window", "6h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No config file found")
}

func TestConfigShow_Defaults(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	require.NoError(t, configShowCommand(&out))

	text := out.String()
	assert.Contains(t, text, "# defaults (no config file)")
	assert.Contains(t, text, "base_url: "+config.DefaultBaseURL)
	assert.Contains(t, text, "live: 3s")
}

func TestConfigShow_URLFlagWins(t *testing.T) {
	isolate(t)
	require.NoError(t, configInitCommand(&bytes.Buffer{}, false, false))
	urlFlag = "https://override:9090"

	var out bytes.Buffer
	require.NoError(t, configShowCommand(&out))
	assert.Contains(t, out.String(), "base_url: https://override:9090")
	assert.Contains(t, out.String(), config.ConfigFileName)
}

func TestLoadSettings_NoColorFlag(t *testing.T) {
	isolate(t)
	noColorFlag = true

	s, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, "never", s.cfg.Output.Color)
}

func TestLoadSettings_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: 5000\n"), 0644))
	cfgFile = path

	_, err := loadSettings()
	require.Error(t, err)
	assert.Equal(t, ErrCodeConfigInvalid, ErrorToJSON(err).Code)
}

func TestConfigSet_UnknownKeySuggests(t *testing.T) {
	isolate(t)

	err := configSetCommand(&bytes.Buffer{}, "poling.live", "5s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean polling.live?")
}
