// Package events carries mutation notifications over NATS. Daemons that
// run with an event bus publish one message per mutation; clients can
// subscribe instead of polling for changes.
package events

import (
	"context"

	"github.com/groblegark/bdclient/internal/model"
)

// Event topic constants
const (
	TopicIssueCreated    = "beads.issue.created"
	TopicIssueUpdated    = "beads.issue.updated"
	TopicIssueClosed     = "beads.issue.closed"
	TopicDependencyAdded = "beads.dependency.added"
	TopicCommentAdded    = "beads.comment.added"

	// TopicAll matches every event the tracker emits.
	TopicAll = "beads.>"
)

type IssueCreated struct {
	Issue *model.Issue `json:"issue"`
}

type IssueUpdated struct {
	Issue   *model.Issue   `json:"issue"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type IssueClosed struct {
	Issue  *model.Issue `json:"issue"`
	Reason string       `json:"reason,omitempty"`
}

type DependencyAdded struct {
	Dependency *model.Dependency `json:"dependency"`
}

type CommentAdded struct {
	Comment *model.Comment `json:"comment"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
