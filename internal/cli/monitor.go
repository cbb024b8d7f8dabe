package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/dashboard"
	"github.com/iceforge/skadimon/internal/errors"
	"github.com/iceforge/skadimon/internal/logger"
	"github.com/iceforge/skadimon/internal/monitor"
	"golang.org/x/term"
)

// LogFileName is where the dashboard writes its log while the TUI owns the terminal.
const LogFileName = "skadimon.log"

// monitorCommand starts the TUI dashboard.
func monitorCommand(windowFlag string, pick, discardStale bool) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrExec,
			"The dashboard needs an interactive terminal",
			"Use 'skadimon snapshot' (or --json) when piping output")
	}

	window, err := resolveWindow(windowFlag, s.cfg.Window())
	if err != nil {
		return err
	}
	if pick {
		window, err = pickWindow(window)
		if err != nil {
			return err
		}
	}

	client, err := s.newClient()
	if err != nil {
		return err
	}

	// The alt screen owns stdout, so log lines go to a file instead.
	logPath := filepath.Join(os.TempDir(), LogFileName)
	logFile, err := tea.LogToFile(logPath, "skadimon")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't open the log file "+logPath,
			"Check that the temp directory is writable")
	}
	defer logFile.Close()

	engine := dashboard.NewEngine(client, dashboard.Config{
		Window:          window,
		LiveInterval:    s.cfg.Polling.Live,
		SeriesInterval:  s.cfg.Polling.Series,
		HistoryInterval: s.cfg.Polling.History,
		DiscardStale:    discardStale || s.cfg.Polling.DiscardStale,
		Logger:          logger.NewEnvLogger("[skadimon]"),
	})
	engine.Start()

	model := monitor.NewModel(engine, monitor.Options{
		BaseURL:     client.BaseURL(),
		MissedTicks: s.cfg.Staleness.MissedTicks,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Graceful shutdown: no store writes after this returns
	engine.Stop()

	return err
}

// resolveWindow returns the --window flag if set, otherwise fallback.
func resolveWindow(flag string, fallback api.Window) (api.Window, error) {
	if flag == "" {
		return fallback, nil
	}
	return api.ParseWindow(flag)
}

// windowOptions lists the selectable windows for the picker.
func windowOptions() []huh.Option[api.Window] {
	options := make([]huh.Option[api.Window], 0, len(api.Windows))
	for _, w := range api.Windows {
		options = append(options, huh.NewOption(fmt.Sprintf("%-4s %s", w, w.Label()), w))
	}
	return options
}

// pickWindow asks for the initial window, starting on current.
func pickWindow(current api.Window) (api.Window, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return current, nil
	}

	selected := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[api.Window]().
				Title("Time window for the duration chart").
				Options(windowOptions()...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return current, errors.WrapWithCode(err, errors.ErrExec,
			"Window selection cancelled", "")
	}
	return selected, nil
}
