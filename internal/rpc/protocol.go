// Package rpc defines the wire protocol spoken by the bd daemon: one JSON
// request object per line on a local socket, answered by exactly one JSON
// response object, after which the daemon closes the connection.
package rpc

import (
	"encoding/json"

	"github.com/groblegark/bdclient/internal/model"
)

// Operation names recognized by the daemon.
const (
	OpPing    = "ping"
	OpHealth  = "health"
	OpList    = "list"
	OpShow    = "show"
	OpReady   = "ready"
	OpBlocked = "blocked"
	OpStats   = "stats"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpClose   = "close"
	OpDepAdd  = "dep_add"
)

// IsMutation reports whether the operation writes to the issue store.
// Mutations are only valid against a live daemon; snapshot-backed
// transports refuse them.
func IsMutation(op string) bool {
	switch op {
	case OpCreate, OpUpdate, OpClose, OpDepAdd:
		return true
	}
	return false
}

// Request is a single RPC request from client to daemon.
type Request struct {
	Operation string          `json:"operation"`
	Args      json.RawMessage `json:"args,omitempty"`
	Actor     string          `json:"actor,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Cwd       string          `json:"cwd,omitempty"`
}

// Response is a single RPC response from daemon to client.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ListArgs carries the list operation's filters.
type ListArgs struct {
	Status    string   `json:"status,omitempty"`
	Priority  *int     `json:"priority,omitempty"`
	IssueType string   `json:"issue_type,omitempty"`
	Assignee  string   `json:"assignee,omitempty"`
	Labels    []string `json:"labels,omitempty"`     // AND semantics
	LabelsAny []string `json:"labels_any,omitempty"` // OR semantics
	Query     string   `json:"query,omitempty"`      // title substring, case-insensitive
	Limit     int      `json:"limit,omitempty"`
}

// ShowArgs identifies the issue for the show operation.
type ShowArgs struct {
	ID string `json:"id"`
}

// ReadyArgs carries the ready operation's filters.
type ReadyArgs struct {
	Assignee   string `json:"assignee,omitempty"`
	Unassigned bool   `json:"unassigned,omitempty"`
	Priority   *int   `json:"priority,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// BlockedArgs carries the blocked operation's filters. The operation
// currently takes none; the type exists so the argument object is always
// present on the wire.
type BlockedArgs struct{}

// StatsArgs carries the stats operation's filters.
type StatsArgs struct{}

// CreateArgs carries the fields for creating an issue.
type CreateArgs struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	IssueType    string   `json:"issue_type"`
	Priority     int      `json:"priority"`
	Assignee     string   `json:"assignee,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// UpdateArgs carries optional field changes for an issue.
// Nil pointer fields mean "don't change".
type UpdateArgs struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
	IssueType   *string `json:"issue_type,omitempty"`
}

// CloseArgs carries the fields for closing an issue.
type CloseArgs struct {
	ID     string `json:"id"`
	Reason string `json:"reason,omitempty"`
}

// DepAddArgs carries the endpoints of a new dependency edge.
type DepAddArgs struct {
	FromID  string `json:"from_id"`
	ToID    string `json:"to_id"`
	DepType string `json:"dep_type"`
}

// PingResponse is the response for a ping operation.
type PingResponse struct {
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

// HealthResponse is the response for a health check operation.
type HealthResponse struct {
	Status        string  `json:"status"` // "healthy", "degraded", "unhealthy"
	Version       string  `json:"version,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds,omitempty"`
}

// ListResponse is the response for a list operation.
type ListResponse struct {
	Issues []*model.Issue `json:"issues"`
}

// ReadyResponse is the response for a ready operation.
type ReadyResponse struct {
	Issues []*model.Issue `json:"issues"`
}

// BlockedResponse is the response for a blocked operation.
type BlockedResponse struct {
	Issues []*model.BlockedIssue `json:"issues"`
}
