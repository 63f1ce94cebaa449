package model

// ListFilter holds criteria for listing issues.
// Labels uses AND semantics (issue must carry every label);
// LabelsAny uses OR semantics (issue must carry at least one).
type ListFilter struct {
	Status    Status    `json:"status,omitempty"`
	Priority  *int      `json:"priority,omitempty"`
	IssueType IssueType `json:"issue_type,omitempty"`
	Assignee  string    `json:"assignee,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	LabelsAny []string  `json:"labels_any,omitempty"`
	Query     string    `json:"query,omitempty"` // case-insensitive title substring
	Limit     int       `json:"limit,omitempty"`
}

// ReadyFilter holds criteria for the ready-work query.
type ReadyFilter struct {
	Assignee   string `json:"assignee,omitempty"`
	Unassigned bool   `json:"unassigned,omitempty"`
	Priority   *int   `json:"priority,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}
