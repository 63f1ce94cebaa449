package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/model"
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List issues that can be worked on now",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := model.ReadyFilter{}
		filter.Assignee, _ = cmd.Flags().GetString("assignee")
		filter.Unassigned, _ = cmd.Flags().GetBool("unassigned")
		filter.Limit, _ = cmd.Flags().GetInt("limit")
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetInt("priority")
			filter.Priority = &p
		}

		issues, err := cli.Ready(cmd.Context(), filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(issues)
		} else {
			printIssueListTable(issues)
		}
		return nil
	},
}

func init() {
	readyCmd.Flags().String("assignee", "", "filter by assignee")
	readyCmd.Flags().Bool("unassigned", false, "only unassigned issues")
	readyCmd.Flags().Int("priority", 0, "filter by priority")
	readyCmd.Flags().Int("limit", 0, "maximum number of issues to return")
}
