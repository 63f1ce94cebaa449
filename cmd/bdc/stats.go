package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate issue counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := cli.Stats(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(stats)
		} else {
			printStatsTable(stats)
		}
		return nil
	},
}
