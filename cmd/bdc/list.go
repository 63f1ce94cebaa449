package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := model.ListFilter{}
		status, _ := cmd.Flags().GetString("status")
		issueType, _ := cmd.Flags().GetString("type")
		filter.Status = model.Status(status)
		filter.IssueType = model.IssueType(issueType)
		filter.Assignee, _ = cmd.Flags().GetString("assignee")
		filter.Labels, _ = cmd.Flags().GetStringSlice("label")
		filter.LabelsAny, _ = cmd.Flags().GetStringSlice("any-label")
		filter.Query, _ = cmd.Flags().GetString("query")
		filter.Limit, _ = cmd.Flags().GetInt("limit")
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetInt("priority")
			filter.Priority = &p
		}

		issues, err := cli.List(cmd.Context(), filter)
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
	listCmd.Flags().StringP("status", "s", "", "filter by status")
	listCmd.Flags().StringP("type", "t", "", "filter by issue type")
	listCmd.Flags().String("assignee", "", "filter by assignee")
	listCmd.Flags().Int("priority", 0, "filter by priority")
	listCmd.Flags().StringSlice("label", nil, "require label (repeatable, all must match)")
	listCmd.Flags().StringSlice("any-label", nil, "require any of these labels (repeatable)")
	listCmd.Flags().StringP("query", "q", "", "case-insensitive title substring")
	listCmd.Flags().Int("limit", 0, "maximum number of issues to return")
}
