package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hitmandev/syscleanx/internal/core"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scx %s (%s) built %s\n", appVersion, appCommit, appDate)
		fmt.Printf("running on %s\n", core.WindowsVersionString())
	},
}
