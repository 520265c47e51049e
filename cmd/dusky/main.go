// Package main implements dusky - a display scale stepper for Hyprland.
// dusky negotiates the next usable scale factor for a monitor from a ladder
// of candidates, persists it to the monitors config file, and applies it
// live through the compositor control socket.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/NextPr0gram/dusky/internal/scale"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	monitorFlag string
	confFlag    string
	dryRun      bool
	noNotify    bool
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dusky",
		Short: "Display scale stepper for Hyprland",
		Long: `dusky - display scale stepper for Hyprland

Steps a monitor's display scale through a ladder of usable factors, writes
the result to your monitors config file, and applies it live through the
compositor socket. Factors that would leave a fractional or too-small
logical resolution are skipped per monitor.

Running dusky without a subcommand shows the current monitor state.`,
		Example: `  # Step the focused monitor one rung up
  dusky up

  # Step a specific monitor down
  dusky down --monitor DP-1

  # Jump straight to a factor
  dusky set 1.5

  # Show what would change without touching anything
  dusky up --dry-run

  # Monitor state and eligible ladders
  dusky status

  # Machine-readable state for scripting
  dusky status --json

  # Bind in hyprland.conf
  bind = SUPER, equal, exec, dusky up
  bind = SUPER, minus, exec, dusky down`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus(false)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&monitorFlag, "monitor", "m", "", "Monitor to operate on (default: the focused monitor)")
	rootCmd.PersistentFlags().StringVar(&confFlag, "conf", "", "Monitors config file to rewrite (default: from config, or $XDG_CONFIG_HOME/hypr/monitors.conf)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Print what would change without writing or applying anything")
	rootCmd.PersistentFlags().BoolVar(&noNotify, "no-notify", false, "Skip the on-screen compositor notification")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Step the display scale one rung up",
		Long: `Step the target monitor's scale to the next larger eligible factor

Content gets bigger. At the top of the ladder the scale stays where it is
and the monitors file is left untouched.`,
		Example: `  # Step the focused monitor up
  dusky up

  # Step an external monitor up
  dusky up -m HDMI-A-1`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStep(scale.Up)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Step the display scale one rung down",
		Long: `Step the target monitor's scale to the next smaller eligible factor

Content gets smaller and more fits on screen. At the bottom of the ladder
the scale stays where it is and the monitors file is left untouched.`,
		Example: `  # Step the focused monitor down
  dusky down

  # Step an external monitor down
  dusky down -m HDMI-A-1`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStep(scale.Down)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <scale>",
		Short: "Apply an explicit scale factor",
		Long: `Apply an explicit scale factor to the target monitor

The factor does not have to sit on the ladder; it only has to be positive.
Setting the factor the monitor already has is a no-op.`,
		Example: `  # Exact factor on the focused monitor
  dusky set 1.6

  # Reset an external monitor to unscaled
  dusky set 1 -m HDMI-A-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSet(args[0])
		},
	}

	var statusJSON bool

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show monitor state and eligible ladders",
		Long: `Show every monitor's resolution, position, scale, and the ladder of
factors eligible for it. The focused monitor is marked.`,
		Example: `  # Styled overview
  dusky status

  # JSON for scripting
  dusky status --json | jq '.[0].scale'`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus(statusJSON)
		},
	}

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")

	ladderCmd := &cobra.Command{
		Use:   "ladder",
		Short: "Show the scale ladder for the target monitor",
		Long: `Show the eligible scale ladder for the target monitor

Each rung lists the logical resolution it would yield. The current factor
is marked when it sits on the ladder.`,
		Example: `  # Ladder for the focused monitor
  dusky ladder

  # Ladder for a specific monitor
  dusky ladder -m DP-1`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLadder()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dusky configuration",
		Long:  `Manage the dusky configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the dusky configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	var configForce bool

	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a documented default configuration file

Refuses to overwrite an existing config unless --force is given.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(configForce)
		},
	}

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configPathCmd, configInitCmd)

	rootCmd.AddCommand(upCmd, downCmd, setCmd)
	rootCmd.AddCommand(statusCmd, ladderCmd, configCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
