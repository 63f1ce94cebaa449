package model

import "time"

// DependencyType categorizes the relationship between two issues.
// Well-known constants are provided below, but dependency types are extensible.
type DependencyType string

const (
	DepBlocks         DependencyType = "blocks"
	DepParentChild    DependencyType = "parent-child"
	DepRelated        DependencyType = "related"
	DepDiscoveredFrom DependencyType = "discovered-from"
)

// IsValid reports whether the dependency type is a non-empty string of at most 50 characters.
// Dependency types are extensible, so any non-empty value within the length limit is accepted.
func (d DependencyType) IsValid() bool {
	return len(d) > 0 && len(d) <= 50
}

// Dependency represents a directed edge from a dependent issue to the issue
// it depends on. This is the only persisted form of a relationship; the
// reverse direction (an issue's dependents) is always derived.
type Dependency struct {
	IssueID     string         `json:"issue_id"`
	DependsOnID string         `json:"depends_on_id"`
	Type        DependencyType `json:"type"`
	CreatedAt   time.Time      `json:"created_at"`
}
