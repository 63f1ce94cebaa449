package model

import "time"

// Status represents the current state of an issue.
// Well-known constants are provided below, but statuses are extensible;
// daemons configured with custom statuses may return other values.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
	StatusResolved   Status = "resolved"
	StatusDeferred   Status = "deferred"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsKnown reports whether the status is one of the well-known values.
func (s Status) IsKnown() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusClosed, StatusResolved, StatusDeferred:
		return true
	}
	return false
}

// IsClosed reports whether the status terminates work on an issue.
func (s Status) IsClosed() bool {
	return s == StatusClosed
}

// IssueType categorizes the kind of work an issue represents.
// Well-known constants are provided below, but types are extensible;
// any non-empty value is accepted.
type IssueType string

const (
	TypeBug     IssueType = "bug"
	TypeFeature IssueType = "feature"
	TypeTask    IssueType = "task"
	TypeEpic    IssueType = "epic"
	TypeChore   IssueType = "chore"
)

// String returns the string representation of the issue type.
func (t IssueType) String() string {
	return string(t)
}

// IsValid reports whether the issue type is a non-empty string.
func (t IssueType) IsValid() bool {
	return t != ""
}

// Issue is the core work-item record.
type Issue struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    int        `json:"priority"`
	IssueType   IssueType  `json:"issue_type"`
	Assignee    string     `json:"assignee,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CloseReason string     `json:"close_reason,omitempty"`

	// Relational data -- derived from the dependency graph, not stored
	// on the issue record itself.
	DependencyCount int            `json:"dependency_count,omitempty"`
	DependentCount  int            `json:"dependent_count,omitempty"`
	Dependencies    []*LinkedIssue `json:"dependencies,omitempty"`
	Dependents      []*LinkedIssue `json:"dependents,omitempty"`
	Comments        []*Comment     `json:"comments,omitempty"`
}

// HasLabel reports whether the issue carries the given label.
func (i *Issue) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// LinkedIssue is a reduced projection of an issue reachable through a
// dependency edge, annotated with the edge's relationship type.
type LinkedIssue struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Status         Status         `json:"status"`
	Priority       int            `json:"priority"`
	IssueType      IssueType      `json:"issue_type"`
	DependencyType DependencyType `json:"dependency_type"`
}

// BlockedIssue extends Issue with the set of unresolved blockers.
// BlockedBy is omitted entirely when the issue has no open blockers
// (an explicitly blocked status with no blocker edges).
type BlockedIssue struct {
	Issue
	BlockedBy      []string `json:"blocked_by,omitempty"`
	BlockedByCount int      `json:"blocked_by_count"`
}
