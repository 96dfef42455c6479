package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hitmandev/syscleanx/internal/apps"
	"github.com/hitmandev/syscleanx/internal/ui"
	"github.com/hitmandev/syscleanx/internal/uninstall"
)

var (
	appsList    bool
	appsSearch  string
	appsShowAll bool
	appsQuiet   bool
)

var appsCmd = &cobra.Command{
	Use:   "apps [name]",
	Short: "List and uninstall applications",
	Long: `Browse the applications registered in the Windows uninstall registry.

Without arguments an interactive list opens; Enter launches the selected
application's own uninstaller. With a name argument that application's
uninstaller runs directly and scx waits for it to finish.`,
	Example: `  scx apps
  scx apps --list --search chrome
  scx apps "Mozilla Firefox" --quiet`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return uninstallByName(cmd.Context(), args[0])
		}
		if appsList || !isatty.IsTerminal(os.Stdout.Fd()) {
			return printAppList()
		}

		model := apps.New(appsShowAll, appsSearch)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("interactive mode failed: %w", err)
		}
		return nil
	},
}

func init() {
	appsCmd.Flags().BoolVar(&appsList, "list", false, "Print a static table instead of the interactive view")
	appsCmd.Flags().StringVar(&appsSearch, "search", "", "Filter by name or publisher")
	appsCmd.Flags().BoolVar(&appsShowAll, "show-all", false, "Include system components and Windows updates")
	appsCmd.Flags().BoolVar(&appsQuiet, "quiet", false, "Run the uninstaller silently when it supports it")
}

func printAppList() error {
	installed, err := uninstall.ListInstalledApps(appsShowAll)
	if err != nil {
		return fmt.Errorf("read installed applications: %w", err)
	}
	installed = uninstall.Filter(installed, appsSearch)

	fmt.Printf("  %-44s %-14s %10s  %s\n", "NAME", "VERSION", "SIZE", "PUBLISHER")
	fmt.Println("  " + strings.Repeat("-", 88))
	for _, app := range installed {
		size := "-"
		if app.EstimatedSize > 0 {
			size = ui.FormatSize(app.EstimatedSize)
		}
		fmt.Printf("  %-44s %-14s %10s  %s\n",
			clip(app.Name, 44), clip(app.Version, 14), size, app.Publisher)
	}
	fmt.Printf("  %s applications\n", ui.FormatCount(len(installed)))
	return nil
}

// uninstallByName resolves name against the registry and runs the matching
// application's uninstaller, waiting for it to exit.
func uninstallByName(ctx context.Context, name string) error {
	installed, err := uninstall.ListInstalledApps(appsShowAll)
	if err != nil {
		return fmt.Errorf("read installed applications: %w", err)
	}

	app, err := matchApp(installed, name)
	if err != nil {
		return err
	}

	fmt.Printf("  Uninstalling %s %s…\n", app.Name, app.Version)
	if err := uninstall.RunUninstall(ctx, app, appsQuiet); err != nil {
		return fmt.Errorf("uninstall %s: %w", app.Name, err)
	}
	fmt.Printf("  %s removed.\n", app.Name)
	return nil
}

// matchApp prefers an exact (case-insensitive) name match and falls back to
// a unique substring match.
func matchApp(installed []uninstall.InstalledApp, name string) (uninstall.InstalledApp, error) {
	lower := strings.ToLower(name)
	for _, app := range installed {
		if strings.ToLower(app.Name) == lower {
			return app, nil
		}
	}

	var matches []uninstall.InstalledApp
	for _, app := range installed {
		if strings.Contains(strings.ToLower(app.Name), lower) {
			matches = append(matches, app)
		}
	}
	switch len(matches) {
	case 0:
		return uninstall.InstalledApp{}, fmt.Errorf("no installed application matches %q", name)
	case 1:
		return matches[0], nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return uninstall.InstalledApp{}, fmt.Errorf("%q matches %d applications: %s",
		name, len(matches), strings.Join(names, ", "))
}

// clip shortens a cell to fit its column.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
