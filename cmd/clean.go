package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/core"
	"github.com/hitmandev/syscleanx/internal/ui"
)

var (
	cleanDryRun  bool
	cleanAll     bool
	cleanUser    bool
	cleanSystem  bool
	cleanBrowser bool
	cleanApps    bool
	cleanNames   []string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long: `Remove temp files and caches without the interactive view.

Select what to clean with the category flags or --target; --all cleans
everything. System targets (Prefetch, Windows Update cache, memory dumps)
need administrator rights and are skipped with a warning otherwise.`,
	Example: `  scx clean --user --browser
  scx clean --target UserTemp --target RecycleBin
  scx clean --all --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := selectCleanTargets()
		if err != nil {
			return err
		}

		elevated := core.IsElevated()
		engine := newEngine(cleanDryRun)

		var totalFiles, totalBytes int64
		var failures int
		for _, t := range targets {
			if t.RequiresAdmin && !elevated {
				fmt.Printf("  %-22s skipped (needs administrator rights)\n", t.Name)
				continue
			}

			res := engine.CleanTarget(t)
			totalFiles += res.FilesRemoved
			totalBytes += res.BytesFreed
			failures += len(res.Errs)

			size := ui.FormatSize(res.BytesFreed)
			if res.FilesRemoved == 0 {
				size = "-"
			}
			fmt.Printf("  %-22s %10s  %10s\n", t.Name, ui.FormatCount(int(res.FilesRemoved)), size)
			for _, e := range res.Errs {
				slog.Debug("clean error", "target", t.Name, "err", e)
			}
		}

		fmt.Println("  " + strings.Repeat("-", 46))
		verb := "Freed"
		if cleanDryRun {
			verb = "Would free"
		}
		fmt.Printf("  %s %s across %s files.\n",
			verb, ui.FormatSize(totalBytes), ui.FormatCount(int(totalFiles)))
		if failures > 0 {
			fmt.Fprintf(os.Stderr, "  %d items could not be removed (in use or access denied); run with --debug for details.\n", failures)
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Preview the cleanup without deleting")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Clean every target")
	cleanCmd.Flags().BoolVar(&cleanUser, "user", false, "Clean user temp and history targets")
	cleanCmd.Flags().BoolVar(&cleanSystem, "system", false, "Clean system targets (requires admin)")
	cleanCmd.Flags().BoolVar(&cleanBrowser, "browser", false, "Clean browser caches")
	cleanCmd.Flags().BoolVar(&cleanApps, "apps", false, "Clean application caches")
	cleanCmd.Flags().StringSliceVar(&cleanNames, "target", nil, "Clean a specific target by name (repeatable)")
}

// selectCleanTargets builds the target list from the flags. With nothing
// selected it returns an error rather than guessing.
func selectCleanTargets() ([]config.CleanTarget, error) {
	if cleanAll {
		return config.GetCleanTargets(), nil
	}

	var targets []config.CleanTarget
	seen := make(map[string]bool)
	add := func(ts ...config.CleanTarget) {
		for _, t := range ts {
			if !seen[t.Name] {
				seen[t.Name] = true
				targets = append(targets, t)
			}
		}
	}

	if cleanUser {
		add(config.GetTargetsByCategory("user")...)
	}
	if cleanSystem {
		add(config.GetTargetsByCategory("system")...)
	}
	if cleanBrowser {
		add(config.GetTargetsByCategory("browser")...)
	}
	if cleanApps {
		add(config.GetTargetsByCategory("apps")...)
	}
	for _, name := range cleanNames {
		t, ok := config.GetTargetByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown target %q (see 'scx scan' for the full list)", name)
		}
		add(t)
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("nothing selected: pass --all, a category flag, or --target")
	}
	return targets, nil
}
