package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/model"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print issues as they change",
	Long: `Watch prints the current issues, then re-queries whenever the data
changes and prints the issues that are new or modified. Change detection
depends on the backend: bus events with BEADS_NATS_URL set, stats polling
against a plain daemon, file watching against a snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		once, _ := cmd.Flags().GetBool("once")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		seen := make(map[string]time.Time)
		if err := queryAndPrint(ctx, seen); err != nil {
			return err
		}
		if once {
			return nil
		}

		changes := make(chan struct{}, 1)
		unsub := cli.OnChange(func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		defer unsub()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changes:
				if err := queryAndPrint(ctx, seen); err != nil {
					return err
				}
			}
		}
	},
}

// queryAndPrint lists issues, diffs against the seen map, and prints any
// that are new or changed.
func queryAndPrint(ctx context.Context, seen map[string]time.Time) error {
	issues, err := cli.List(ctx, model.ListFilter{})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	changed := diffIssues(issues, seen)
	if len(changed) > 0 {
		if jsonOutput {
			printJSON(changed)
		} else {
			printIssueListTable(changed)
		}
	}
	return nil
}

// diffIssues returns issues that are new or have a different updated_at
// timestamp since last seen. It updates seen in place.
func diffIssues(issues []*model.Issue, seen map[string]time.Time) []*model.Issue {
	var changed []*model.Issue
	for _, iss := range issues {
		prev, ok := seen[iss.ID]
		if !ok || !iss.UpdatedAt.Equal(prev) {
			changed = append(changed, iss)
		}
		seen[iss.ID] = iss.UpdatedAt
	}
	return changed
}

func init() {
	watchCmd.Flags().Bool("once", false, "print the current state and exit")
}
