package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/rpc"
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create an issue (requires a daemon)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := rpc.CreateArgs{Title: args[0]}
		req.Description, _ = cmd.Flags().GetString("description")
		req.IssueType, _ = cmd.Flags().GetString("type")
		req.Priority, _ = cmd.Flags().GetInt("priority")
		req.Assignee, _ = cmd.Flags().GetString("assignee")
		req.Labels, _ = cmd.Flags().GetStringSlice("label")
		req.Dependencies, _ = cmd.Flags().GetStringSlice("depends-on")

		iss, err := cli.Create(cmd.Context(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(iss)
		} else {
			fmt.Printf("Created %s\n", iss.ID)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("description", "d", "", "issue description")
	createCmd.Flags().StringP("type", "t", "task", "issue type")
	createCmd.Flags().IntP("priority", "p", 2, "priority (0 = highest)")
	createCmd.Flags().String("assignee", "", "assignee")
	createCmd.Flags().StringSlice("label", nil, "label (repeatable)")
	createCmd.Flags().StringSlice("depends-on", nil, "blocking dependency id (repeatable)")
}
