package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hitmandev/syscleanx/internal/apps"
	"github.com/hitmandev/syscleanx/internal/clean"
	"github.com/hitmandev/syscleanx/internal/cleaner"
	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/core"
	"github.com/hitmandev/syscleanx/internal/scan"
	"github.com/hitmandev/syscleanx/internal/tui"
)

var (
	// Global flags
	debug     bool
	noElevate bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "scx",
	Short: "Clean temp files and uninstall applications",
	Long: `SysCleanX - Windows temp file cleaner and application uninstaller.

Scans the usual junk locations (user temp, browser caches, Prefetch,
Windows Update leftovers, the Recycle Bin) and removes what you select.
Also lists installed applications so you can launch their native
uninstallers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().BoolVar(&noElevate, "no-elevate", false, "Never relaunch with administrator rights")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(whitelistCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging() {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// newEngine builds the shared scanner and delete engine, loading the user
// whitelist. A broken whitelist file is reported but never blocks cleaning.
func newEngine(dryRun bool) *clean.Engine {
	wl, err := config.LoadWhitelist(config.WhitelistPath())
	if err != nil {
		slog.Warn("whitelist unreadable, continuing without it", "err", err)
		wl = &config.Whitelist{}
	}
	scanner := scan.NewScanner(0, wl)
	return clean.NewEngine(scanner, clean.Options{
		DryRun:    dryRun,
		Whitelist: wl,
	})
}

// runInteractive starts the full-screen cleaner, with Tab switching to the
// uninstaller pane. Without a terminal it degrades to a plain scan report.
func runInteractive() error {
	if !noElevate && !core.IsElevated() {
		if err := core.RelaunchElevated(); err == nil {
			os.Exit(0)
		} else {
			slog.Debug("elevation declined, continuing unelevated", "err", err)
		}
	}

	engine := newEngine(false)
	targets := config.GetCleanTargets()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		results := engine.ScanAll(targets, nil)
		cleaner.PrintScanReport(os.Stdout, targets, results)
		return nil
	}

	app := tui.NewApp(
		cleaner.New(engine, targets, core.IsElevated()),
		apps.New(false, ""),
	)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}
	return nil
}
