package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// isolate runs the test in an empty project directory with its own HOME,
// so no real .skadimon.yaml is picked up, and resets the global flags.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, env := range []string{"SKADIMON_BASE_URL", "SKADIMON_DEFAULT_WINDOW", "SKADIMON_OUTPUT_COLOR"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	oldCfg, oldURL, oldNoColor := cfgFile, urlFlag, noColorFlag
	t.Cleanup(func() {
		cfgFile, urlFlag, noColorFlag = oldCfg, oldURL, oldNoColor
		lipgloss.SetColorProfile(termenv.Ascii)
	})
	cfgFile, urlFlag, noColorFlag = "", "", false

	return dir
}
