// Package snapshot implements a read-only transport backed by a JSONL
// export of the issue database. The whole file is loaded into an in-memory
// index, so every query is answered without touching disk; a watcher can
// reload the index when the file changes.
package snapshot

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/groblegark/bdclient/internal/model"
	"github.com/groblegark/bdclient/internal/rpc"
	"github.com/groblegark/bdclient/internal/transport"
)

// record mirrors one line of the snapshot file. It differs from the API
// issue shape in one place: the dependencies field holds raw edges rather
// than linked-issue projections.
type record struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	IssueType   string     `json:"issue_type"`
	Assignee    string     `json:"assignee,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CloseReason string     `json:"close_reason,omitempty"`

	Dependencies []*model.Dependency `json:"dependencies,omitempty"`
	Comments     []*model.Comment    `json:"comments,omitempty"`
}

func (r *record) issue() *model.Issue {
	return &model.Issue{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      model.Status(r.Status),
		Priority:    r.Priority,
		IssueType:   model.IssueType(r.IssueType),
		Assignee:    r.Assignee,
		Labels:      r.Labels,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		ClosedAt:    r.ClosedAt,
		CloseReason: r.CloseReason,
		Comments:    r.Comments,
	}
}

// Transport answers read-only queries from an in-memory snapshot index.
// Mutations fail with transport.ErrReadOnly before any work is done.
type Transport struct {
	path    string
	logger  *slog.Logger
	idx     atomic.Pointer[index]
	watcher *watcher
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) { t.logger = l }
}

// Open loads the snapshot file at path and returns a ready transport.
func Open(path string, opts ...Option) (*Transport, error) {
	t := &Transport{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Path returns the snapshot file this transport reads.
func (t *Transport) Path() string { return t.path }

// Reload re-reads the snapshot file and atomically swaps in the new index.
// In-flight queries keep reading the index they started with.
func (t *Transport) Reload() error {
	records, err := t.load()
	if err != nil {
		return err
	}
	t.idx.Store(buildIndex(records))
	return nil
}

// load parses the snapshot file line by line. A line that is not valid
// JSON, or that lacks an id, is skipped with a warning; one corrupt record
// must not take down the rest of the file.
func (t *Transport) load() ([]*record, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, &transport.UnreachableError{Path: t.path, Err: err}
	}
	defer f.Close()

	var records []*record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			t.logger.Warn("skipping malformed snapshot line",
				"path", t.path, "line", lineNo, "error", err)
			continue
		}
		if rec.ID == "" {
			t.logger.Warn("skipping snapshot line without id",
				"path", t.path, "line", lineNo)
			continue
		}
		records = append(records, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", t.path, err)
	}
	return records, nil
}

// Send dispatches a query against the in-memory index. The context is
// accepted for interface symmetry; queries never block.
func (t *Transport) Send(ctx context.Context, operation string, args any) (json.RawMessage, error) {
	if rpc.IsMutation(operation) {
		return nil, fmt.Errorf("%s: %w", operation, transport.ErrReadOnly)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rawArgs, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling args: %w", operation, err)
	}

	idx := t.idx.Load()
	result, err := t.dispatch(idx, operation, rawArgs)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling result: %w", operation, err)
	}
	return data, nil
}

func (t *Transport) dispatch(idx *index, operation string, rawArgs json.RawMessage) (any, error) {
	switch operation {
	case rpc.OpPing:
		return rpc.PingResponse{Message: "pong (snapshot)"}, nil
	case rpc.OpHealth:
		return rpc.HealthResponse{Status: "healthy"}, nil
	case rpc.OpList:
		var args rpc.ListArgs
		if err := unmarshalArgs(rawArgs, &args); err != nil {
			return nil, err
		}
		return rpc.ListResponse{Issues: idx.list(args)}, nil
	case rpc.OpShow:
		var args rpc.ShowArgs
		if err := unmarshalArgs(rawArgs, &args); err != nil {
			return nil, err
		}
		return idx.show(args.ID)
	case rpc.OpReady:
		var args rpc.ReadyArgs
		if err := unmarshalArgs(rawArgs, &args); err != nil {
			return nil, err
		}
		return rpc.ReadyResponse{Issues: idx.ready(args)}, nil
	case rpc.OpBlocked:
		return rpc.BlockedResponse{Issues: idx.blocked()}, nil
	case rpc.OpStats:
		return idx.stats(), nil
	default:
		return nil, &transport.ProtocolError{Operation: operation, Message: "unknown operation"}
	}
}

func unmarshalArgs(raw json.RawMessage, into any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, into)
}

// Watch starts reloading the index whenever the snapshot file changes.
// onReload, if non-nil, runs after each successful swap.
func (t *Transport) Watch(onReload func()) error {
	if t.watcher != nil {
		return nil
	}
	w, err := newWatcher(t, onReload)
	if err != nil {
		return err
	}
	t.watcher = w
	return nil
}

// Close stops the watcher, if any. It is safe to call more than once.
func (t *Transport) Close() error {
	if t.watcher != nil {
		t.watcher.stop()
		t.watcher = nil
	}
	return nil
}
