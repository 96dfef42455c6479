package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hitmandev/syscleanx/internal/config"
)

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Manage protected paths",
	Long: `View and edit the whitelist of paths the cleaner must never touch.

Whitelisted paths are excluded from scans and refused by the delete
engine. The list lives in ` + "`%LOCALAPPDATA%\\SysCleanX\\whitelist.yaml`" + `
and can also be edited by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wl, err := config.LoadWhitelist(config.WhitelistPath())
		if err != nil {
			return err
		}
		if len(wl.Paths) == 0 {
			fmt.Println("  No whitelisted paths.")
			return nil
		}
		for _, p := range wl.Paths {
			fmt.Println("  " + p)
		}
		return nil
	},
}

var whitelistAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Protect a path from cleaning",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.WhitelistPath()
		wl, err := config.LoadWhitelist(path)
		if err != nil {
			return err
		}
		wl.Add(args[0])
		if err := wl.Save(path); err != nil {
			return fmt.Errorf("save whitelist: %w", err)
		}
		fmt.Printf("  Protected %s\n", args[0])
		return nil
	},
}

var whitelistRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Stop protecting a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.WhitelistPath()
		wl, err := config.LoadWhitelist(path)
		if err != nil {
			return err
		}
		if !wl.Remove(args[0]) {
			return fmt.Errorf("%s is not whitelisted", args[0])
		}
		if err := wl.Save(path); err != nil {
			return fmt.Errorf("save whitelist: %w", err)
		}
		fmt.Printf("  Unprotected %s\n", args[0])
		return nil
	},
}

func init() {
	whitelistCmd.AddCommand(whitelistAddCmd)
	whitelistCmd.AddCommand(whitelistRemoveCmd)
}
