package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/rpc"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update issue fields (requires a daemon)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := rpc.UpdateArgs{ID: args[0]}

		// Only flags the user actually set become changes.
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			req.Status = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetInt("priority")
			req.Priority = &v
		}
		if cmd.Flags().Changed("assignee") {
			v, _ := cmd.Flags().GetString("assignee")
			req.Assignee = &v
		}
		if cmd.Flags().Changed("type") {
			v, _ := cmd.Flags().GetString("type")
			req.IssueType = &v
		}

		iss, err := cli.Update(cmd.Context(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(iss)
		} else {
			fmt.Printf("Updated %s\n", iss.ID)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().StringP("description", "d", "", "new description")
	updateCmd.Flags().StringP("status", "s", "", "new status")
	updateCmd.Flags().IntP("priority", "p", 0, "new priority")
	updateCmd.Flags().String("assignee", "", "new assignee")
	updateCmd.Flags().StringP("type", "t", "", "new issue type")
}
