package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/status"
)

var (
	statusJSON   bool
	statusNoScan bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a system snapshot",
	Long: `One-shot report of the Windows version, CPU, memory, and disk usage,
plus an estimate of the space a full clean would reclaim. --no-scan skips
the estimate for a faster answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics, err := status.Collect(cmd.Context())
		if err != nil {
			return fmt.Errorf("collect metrics: %w", err)
		}

		reclaimable := int64(-1)
		if !statusNoScan {
			engine := newEngine(true)
			reclaimable = 0
			for _, r := range engine.ScanAll(config.GetCleanTargets(), nil) {
				reclaimable += r.Bytes
			}
		}

		if statusJSON {
			out, err := status.RenderJSON(metrics, reclaimable)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		fmt.Println(status.RenderText(metrics, reclaimable))
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output the snapshot as JSON")
	statusCmd.Flags().BoolVar(&statusNoScan, "no-scan", false, "Skip the reclaimable-space estimate")
}
