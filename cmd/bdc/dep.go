package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/model"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage dependencies between issues",
}

var depAddCmd = &cobra.Command{
	Use:   "add <id> <depends-on-id>",
	Short: "Record that one issue depends on another (requires a daemon)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		depType, _ := cmd.Flags().GetString("type")

		err := cli.AddDependency(cmd.Context(), args[0], args[1], model.DependencyType(depType))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s now depends on %s (%s)\n", args[0], args[1], depType)
		return nil
	},
}

func init() {
	depAddCmd.Flags().StringP("type", "t", string(model.DepBlocks), "dependency type")
	depCmd.AddCommand(depAddCmd)
}
