package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "List issues that cannot proceed, with their blockers",
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := cli.Blocked(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(issues)
		} else {
			printBlockedTable(issues)
		}
		return nil
	},
}
