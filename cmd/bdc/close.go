package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close an issue (requires a daemon)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")

		iss, err := cli.CloseIssue(cmd.Context(), args[0], reason)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(iss)
		} else {
			fmt.Printf("Closed %s\n", iss.ID)
		}
		return nil
	},
}

func init() {
	closeCmd.Flags().StringP("reason", "r", "", "why the issue is being closed")
}
