package cli

import (
	"os"

	"github.com/iceforge/skadimon/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	monitorWindowFlag  string
	monitorPickFlag    bool
	monitorDiscardFlag bool
	snapshotJSONFlag   bool
	configInitForce    bool
	configInitGlobal   bool
)

// monitorCmd starts the TUI dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard for a Skadi node",
	Long: `Open an interactive dashboard that polls a Skadi node.

Running queries refresh every 3s, query durations every 8s and the
history table every 6s. Each stream polls on its own; a slow or failing
endpoint never holds the others back.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  w           Cycle time window (15m, 1h, 6h, 24h)
  1-4         Pick a time window
  up/k        Select previous query
  down/j      Select next query
  Enter       Show query details
  Esc         Go back
  ?           Show help

Examples:
  skadimon monitor
  skadimon monitor --window 6h
  skadimon monitor --url http://skadi.internal:8080 --pick-window`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(monitorWindowFlag, monitorPickFlag, monitorDiscardFlag)
	},
}

// snapshotCmd fetches every endpoint once and prints the result
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch the dashboard data once and print it",
	Long: `Fetch live metrics, the duration series and query history once,
concurrently, and print a summary.

Useful in scripts and for checking that a node is reachable.

Examples:
  skadimon snapshot
  skadimon snapshot --window 24h
  skadimon snapshot --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = snapshotJSONFlag
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), monitorWindowFlag, snapshotJSONFlag)
	},
}

// configCmd groups the config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage .skadimon.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .skadimon.yaml",
	Long: `Write a commented configuration file with the default settings.

The file goes to ./.skadimon.yaml, or to ~/.config/skadimon/config.yaml
with --global. --url is written as base_url when given.

Examples:
  skadimon config init
  skadimon config init --url http://skadi.internal:8080
  skadimon config init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitCommand(cmd.OutOrStdout(), configInitGlobal, configInitForce)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Set a dotted key in the config file in place. Comments and key order
are kept. The result is validated before it's written.

Examples:
  skadimon config set default_window 6h
  skadimon config set polling.live 5s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for skadimon.

Examples:
  # Bash
  skadimon completion bash > /etc/bash_completion.d/skadimon

  # Zsh
  skadimon completion zsh > "${fpath[1]}/_skadimon"

  # Fish
  skadimon completion fish > ~/.config/fish/completions/skadimon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

// addMonitorFlags registers the dashboard flags on cmd. The root command
// gets them too since it runs the dashboard by default.
func addMonitorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&monitorWindowFlag, "window", "", "initial time window (15m, 1h, 6h, 24h)")
	cmd.Flags().BoolVar(&monitorPickFlag, "pick-window", false, "choose the initial time window interactively")
	cmd.Flags().BoolVar(&monitorDiscardFlag, "discard-stale", false, "drop responses older than one already shown")
}

func init() {
	addMonitorFlags(monitorCmd)

	snapshotCmd.Flags().StringVar(&monitorWindowFlag, "window", "", "time window for the duration series (15m, 1h, 6h, 24h)")
	snapshotCmd.Flags().BoolVar(&snapshotJSONFlag, "json", false, "output as JSON")

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config")
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write ~/.config/skadimon/config.yaml")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
