package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/config"
	"github.com/iceforge/skadimon/internal/errors"
	"github.com/iceforge/skadimon/internal/logger"
	"github.com/iceforge/skadimon/internal/util"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	urlFlag     string
	noColorFlag bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "skadimon",
	Short: "Terminal dashboard for a Skadi query cluster",
	Long: `skadimon polls a Skadi node and shows running queries, query
durations over a time window, and recent query history.

Run without a subcommand to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(monitorWindowFlag, monitorPickFlag, monitorDiscardFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.skadimon.yaml or ~/.config/skadimon/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "Skadi node URL, overrides base_url")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	addMonitorFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if MachineMode() {
			_ = WriteJSONFromError(os.Stdout, err)
			os.Exit(1)
		}
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				fmt.Fprintln(os.Stderr, unknownCommandMessage(name))
				os.Exit(1)
			}
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "skadimon"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// unknownCommandMessage explains an unknown command, suggesting close matches.
func unknownCommandMessage(name string) string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if !c.Hidden {
			names = append(names, c.Name())
		}
	}
	msg := fmt.Sprintf("Unknown command '%s'.", name)
	if similar := util.SuggestSimilar(name, names, 3); len(similar) > 0 {
		return msg + " Did you mean " + strings.Join(similar, " or ") + "?"
	}
	return msg + " Run 'skadimon --help' for the list of commands."
}

// settings is the resolved configuration for one command invocation.
type settings struct {
	cfg  *config.Config
	path string
}

// loadSettings loads the config file (if any), applies global flag
// overrides, and validates the result.
func loadSettings() (*settings, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}

	if urlFlag != "" {
		cfg.BaseURL = strings.TrimSpace(urlFlag)
	}
	if noColorFlag {
		cfg.Output.Color = "never"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	applyColor(cfg.Output.Color)
	return &settings{cfg: cfg, path: path}, nil
}

// applyColor sets the lipgloss profile for output.color. "auto" leaves
// termenv's detection (which honours NO_COLOR) alone.
func applyColor(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// newClient builds the HTTP client for the configured node.
func (s *settings) newClient() (*api.Client, error) {
	// One idle connection per stream keeps each poll off a fresh handshake.
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: 3,
		IdleConnTimeout:     90 * time.Second,
	}
	client, err := api.NewClient(s.cfg.BaseURL,
		api.WithHTTPClient(&http.Client{Transport: transport}),
		api.WithTimeout(s.cfg.RequestTimeout),
		api.WithLogger(logger.NewEnvLogger("[api]")),
		api.WithHistoryLimit(s.cfg.HistoryLimit),
		api.WithUserAgent("skadimon/"+GetVersion()),
	)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't reach a Skadi node without a valid URL",
			"Set base_url in .skadimon.yaml or pass --url http://host:8080")
	}
	return client, nil
}
