package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hitmandev/syscleanx/internal/cleaner"
	"github.com/hitmandev/syscleanx/internal/config"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan [target...]",
	Short: "Measure cleanable space",
	Long: `Scan the clean targets and report per-target file counts and sizes
without deleting anything. With no arguments every target is scanned;
otherwise only the named targets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := resolveTargets(args)
		if err != nil {
			return err
		}

		engine := newEngine(true)
		results := engine.ScanAll(targets, nil)

		if scanJSON {
			type row struct {
				Target   string `json:"target"`
				Category string `json:"category"`
				Files    int64  `json:"files"`
				Bytes    int64  `json:"bytes"`
			}
			rows := make([]row, 0, len(targets))
			for _, t := range targets {
				r := results[t.Name]
				rows = append(rows, row{Target: t.Name, Category: t.Category, Files: r.Files, Bytes: r.Bytes})
			}
			out, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		cleaner.PrintScanReport(os.Stdout, targets, results)
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output results as JSON")
}

// resolveTargets maps names to targets, defaulting to all of them.
func resolveTargets(names []string) ([]config.CleanTarget, error) {
	if len(names) == 0 {
		return config.GetCleanTargets(), nil
	}
	targets := make([]config.CleanTarget, 0, len(names))
	for _, name := range names {
		t, ok := config.GetTargetByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown target %q (see 'scx scan' for the full list)", name)
		}
		targets = append(targets, t)
	}
	return targets, nil
}
