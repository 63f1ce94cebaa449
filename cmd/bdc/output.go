package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/groblegark/bdclient/internal/model"
	"github.com/groblegark/bdclient/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printIssueTable(iss *model.Issue) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(iss.ID))
	fmt.Printf("Title:       %s\n", iss.Title)
	fmt.Printf("Status:      %s\n", iss.Status)
	fmt.Printf("Priority:    %d\n", iss.Priority)
	fmt.Printf("Type:        %s\n", iss.IssueType)
	if iss.Assignee != "" {
		fmt.Printf("Assignee:    %s\n", iss.Assignee)
	}
	if iss.Description != "" {
		fmt.Printf("Description: %s\n", iss.Description)
	}
	if len(iss.Labels) > 0 {
		fmt.Printf("Labels:      %s\n", strings.Join(iss.Labels, ", "))
	}
	fmt.Printf("Created At:  %s\n", iss.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:  %s\n", iss.UpdatedAt.Format("2006-01-02 15:04:05"))
	if iss.ClosedAt != nil {
		fmt.Printf("Closed At:   %s\n", iss.ClosedAt.Format("2006-01-02 15:04:05"))
	}
	if iss.CloseReason != "" {
		fmt.Printf("Reason:      %s\n", iss.CloseReason)
	}
	if len(iss.Dependencies) > 0 {
		fmt.Println("Depends on:")
		printLinkedIssues(iss.Dependencies)
	}
	if len(iss.Dependents) > 0 {
		fmt.Println("Needed by:")
		printLinkedIssues(iss.Dependents)
	}
	for _, c := range iss.Comments {
		fmt.Printf("Comment (%s, %s):\n  %s\n",
			c.Author, c.CreatedAt.Format("2006-01-02 15:04"), c.Text)
	}
}

func printLinkedIssues(links []*model.LinkedIssue) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, l := range links {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", l.ID, l.Status, l.DependencyType, l.Title)
	}
	w.Flush()
}

func printIssueListTable(issues []*model.Issue) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTYPE\tPRIORITY\tTITLE\tASSIGNEE")
	for _, iss := range issues {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			iss.ID,
			iss.Status,
			iss.IssueType,
			iss.Priority,
			truncate(iss.Title, 50),
			iss.Assignee,
		)
	}
	w.Flush()
	fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("%d issues", len(issues))))
}

func printBlockedTable(issues []*model.BlockedIssue) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tTITLE\tBLOCKED BY")
	for _, iss := range issues {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			iss.ID,
			iss.Status,
			iss.Priority,
			truncate(iss.Title, 50),
			strings.Join(iss.BlockedBy, ", "),
		)
	}
	w.Flush()
	fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("%d blocked", len(issues))))
}

func printStatsTable(stats *model.Stats) {
	s := stats.Summary
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total:\t%d\n", s.Total)
	fmt.Fprintf(w, "Open:\t%d\n", s.Open)
	fmt.Fprintf(w, "In progress:\t%d\n", s.InProgress)
	fmt.Fprintf(w, "Blocked:\t%d\n", s.Blocked)
	fmt.Fprintf(w, "Ready:\t%d\n", s.Ready)
	fmt.Fprintf(w, "Deferred:\t%d\n", s.Deferred)
	fmt.Fprintf(w, "Closed:\t%d\n", s.Closed)
	fmt.Fprintf(w, "Avg lead time:\t%.1fh\n", s.AverageLeadTimeHours)
	w.Flush()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
