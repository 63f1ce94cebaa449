package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that a backend answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := cli.Ping(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		fmt.Printf("%s (mode: %s)\n", resp.Message, cli.Mode())
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show backend health",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := cli.Health(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		fmt.Printf("Status:  %s\n", resp.Status)
		if resp.Version != "" {
			fmt.Printf("Version: %s\n", resp.Version)
		}
		if resp.UptimeSeconds > 0 {
			fmt.Printf("Uptime:  %.0fs\n", resp.UptimeSeconds)
		}
		return nil
	},
}
