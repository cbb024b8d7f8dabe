package cli

import (
	"os"
	"testing"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestResolveWindow(t *testing.T) {
	w, err := resolveWindow("", api.Window6h)
	require.NoError(t, err)
	assert.Equal(t, api.Window6h, w)

	w, err = resolveWindow(" 24H ", api.Window6h)
	require.NoError(t, err)
	assert.Equal(t, api.Window24h, w)

	_, err = resolveWindow("7d", api.Window6h)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestWindowOptions(t *testing.T) {
	options := windowOptions()

	require.Len(t, options, len(api.Windows))
	for i, opt := range options {
		assert.Equal(t, api.Windows[i], opt.Value)
		assert.Contains(t, opt.Key, api.Windows[i].Label())
	}
}

func TestMonitorCommand_RequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	isolate(t)

	err := monitorCommand("", false, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestMonitorCommand_ConfigErrorsComeFirst(t *testing.T) {
	isolate(t)
	urlFlag = "not a url"

	err := monitorCommand("", false, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
