package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [powershell|bash|zsh]",
	Short: "Generate shell tab completion",
	Long: `Generate a tab completion script. PowerShell is the usual choice on
Windows:

  scx completion powershell | Out-String | Invoke-Expression

Add that line to your PowerShell profile to load completions in every
session.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"powershell", "bash", "zsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		case "bash":
			return rootCmd.GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}
