// Package client provides the high-level issue tracker client. It prefers a
// live daemon and falls back to the read-only snapshot file when no daemon
// answers, exposing the same typed query API over either backend.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/groblegark/bdclient/internal/events"
	"github.com/groblegark/bdclient/internal/model"
	"github.com/groblegark/bdclient/internal/rpc"
	"github.com/groblegark/bdclient/internal/transport"
	"github.com/groblegark/bdclient/internal/transport/daemon"
	"github.com/groblegark/bdclient/internal/transport/snapshot"
	"github.com/groblegark/bdclient/internal/workspace"
)

// Mode identifies which backend a client is connected to.
type Mode string

const (
	ModeDisconnected Mode = "disconnected"
	ModeDaemon       Mode = "daemon"
	ModeSnapshot     Mode = "snapshot"
)

// ErrDisconnected is returned when an operation is attempted before Connect
// or after Disconnect.
var ErrDisconnected = errors.New("client is not connected")

// probeTimeout bounds the ping used to decide whether a daemon is alive.
// Keeping it short makes the snapshot fallback snappy when the socket is a
// leftover from a dead daemon.
const probeTimeout = time.Second

// Client is the orchestrating issue tracker client.
type Client struct {
	workspaceRoot string
	socketPath    string
	snapshotPath  string
	timeout       time.Duration
	pollInterval  time.Duration
	actor         string
	eventsURL     string
	starter       daemon.Starter
	logger        *slog.Logger

	// connMu serializes Connect/Disconnect transitions end to end; mu
	// guards the published state reads and writes within them.
	connMu sync.Mutex

	mu        sync.Mutex
	mode      Mode
	tr        transport.Transport
	poller    *Poller
	notifier  *events.Notifier
	eventsSub events.Subscriber
	subs      []*subscription
}

type subscription struct {
	fn func()
}

// Option configures a Client.
type Option func(*Client)

// WithWorkspaceRoot sets the directory the .beads discovery walk starts
// from. Defaults to the current directory.
func WithWorkspaceRoot(dir string) Option {
	return func(c *Client) { c.workspaceRoot = dir }
}

// WithSocketPath pins the daemon socket, skipping discovery.
func WithSocketPath(path string) Option {
	return func(c *Client) { c.socketPath = path }
}

// WithSnapshotPath pins the snapshot file, skipping discovery.
func WithSnapshotPath(path string) Option {
	return func(c *Client) { c.snapshotPath = path }
}

// WithTimeout sets the per-call daemon timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPollInterval sets the change poller's sampling interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithActor sets the actor name attached to daemon requests.
func WithActor(actor string) Option {
	return func(c *Client) { c.actor = actor }
}

// WithEventsURL points the client at a NATS event bus. While connected to
// a daemon, bus events drive change detection instead of stats polling.
func WithEventsURL(url string) Option {
	return func(c *Client) { c.eventsURL = url }
}

// WithStarter supplies a collaborator that can launch the daemon when its
// socket is missing.
func WithStarter(s daemon.Starter) Option {
	return func(c *Client) { c.starter = s }
}

// WithLogger sets the client's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a disconnected client. Call Connect before issuing queries.
func New(opts ...Option) *Client {
	c := &Client{
		workspaceRoot: ".",
		timeout:       daemon.DefaultTimeout,
		pollInterval:  DefaultPollInterval,
		logger:        slog.Default(),
		mode:          ModeDisconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode reports the active backend.
func (c *Client) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Connect selects a backend: probe the daemon socket with a short ping,
// and fall back to loading the snapshot file when the daemon does not
// answer. Connecting an already-connected client is a no-op. When both
// backends fail the returned error names both attempts.
func (c *Client) Connect(ctx context.Context) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.mu.Lock()
	if c.mode != ModeDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	dtr, derr := c.connectDaemon(ctx)
	if derr == nil {
		c.mu.Lock()
		c.mode = ModeDaemon
		c.tr = dtr
		c.mu.Unlock()
		c.startChangeDetection(dtr)
		c.logger.Debug("connected to daemon", "socket", dtr.SocketPath())
		return nil
	}

	str, serr := c.connectSnapshot()
	if serr == nil {
		c.mu.Lock()
		c.mode = ModeSnapshot
		c.tr = str
		c.mu.Unlock()
		c.logger.Info("daemon unavailable, using snapshot",
			"snapshot", str.Path(), "daemon_error", derr)
		return nil
	}

	return fmt.Errorf("no backend available: daemon: %v; snapshot: %v", derr, serr)
}

// startChangeDetection picks the change source for a daemon connection:
// event-bus push when an events URL is configured and reachable, stats
// polling otherwise.
func (c *Client) startChangeDetection(tr transport.Transport) {
	if c.eventsURL != "" {
		// Fire on reconnect too: events published while the bus connection
		// was down are gone, so subscribers should re-query.
		sub, err := events.NewNATSSubscriber(c.eventsURL,
			nats.ReconnectHandler(func(_ *nats.Conn) { c.fireChange() }))
		if err == nil {
			notifier := events.NewNotifier(sub, c.fireChange)
			if err = notifier.Start(); err == nil {
				c.mu.Lock()
				c.notifier = notifier
				c.eventsSub = sub
				c.mu.Unlock()
				return
			}
			sub.Close()
		}
		c.logger.Warn("event bus unavailable, falling back to polling",
			"url", c.eventsURL, "error", err)
	}
	poller := NewPoller(tr, c.pollInterval, c.fireChange)
	poller.Start()
	c.mu.Lock()
	c.poller = poller
	c.mu.Unlock()
}

func (c *Client) connectDaemon(ctx context.Context) (*daemon.Transport, error) {
	var tr *daemon.Transport
	opts := []daemon.Option{daemon.WithTimeout(c.timeout), daemon.WithActor(c.actor)}
	if c.socketPath != "" {
		tr = daemon.New(c.socketPath, opts...)
	} else {
		var err error
		tr, err = daemon.Discover(ctx, c.workspaceRoot, c.starter, opts...)
		if err != nil {
			return nil, err
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if _, err := tr.Send(probeCtx, rpc.OpPing, struct{}{}); err != nil {
		return nil, err
	}
	return tr, nil
}

func (c *Client) connectSnapshot() (*snapshot.Transport, error) {
	path := c.snapshotPath
	if path == "" {
		dir, err := workspace.Find(c.workspaceRoot)
		if err != nil {
			return nil, err
		}
		path = workspace.SnapshotPath(dir)
	}
	tr, err := snapshot.Open(path, snapshot.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	if err := tr.Watch(c.fireChange); err != nil {
		c.logger.Warn("snapshot watch unavailable", "error", err)
	}
	return tr, nil
}

// Disconnect stops change detection and releases the backend. It is safe
// to call repeatedly and on a never-connected client.
func (c *Client) Disconnect() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.mu.Lock()
	tr := c.tr
	poller := c.poller
	notifier := c.notifier
	sub := c.eventsSub
	c.mode = ModeDisconnected
	c.tr = nil
	c.poller = nil
	c.notifier = nil
	c.eventsSub = nil
	c.mu.Unlock()

	if poller != nil {
		poller.Stop()
	}
	if notifier != nil {
		notifier.Stop()
	}
	if sub != nil {
		sub.Close()
	}
	if tr != nil {
		return tr.Close()
	}
	return nil
}

// Close is an alias for Disconnect.
func (c *Client) Close() error { return c.Disconnect() }

// OnChange registers a callback fired whenever the backing data is
// observed to have changed. The returned function removes the
// registration; calling it more than once is harmless.
func (c *Client) OnChange(fn func()) (unsubscribe func()) {
	s := &subscription{fn: fn}
	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, cur := range c.subs {
			if cur == s {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// fireChange invokes subscribers outside the lock so a callback may
// subscribe or unsubscribe without deadlocking.
func (c *Client) fireChange() {
	c.mu.Lock()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()
	for _, s := range subs {
		s.fn()
	}
}

func (c *Client) reader() (transport.Transport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tr == nil {
		return nil, ErrDisconnected
	}
	return c.tr, nil
}

// writer returns the transport only when mutations are possible. The check
// happens before any I/O so a read-only client fails fast.
func (c *Client) writer() (transport.Transport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.mode {
	case ModeDaemon:
		return c.tr, nil
	case ModeSnapshot:
		return nil, transport.ErrReadOnly
	default:
		return nil, ErrDisconnected
	}
}

func call[T any](ctx context.Context, tr transport.Transport, op string, args any) (*T, error) {
	data, err := tr.Send(ctx, op, args)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("%s: decoding result: %w", op, err)
		}
	}
	return out, nil
}

// Ping checks that the backend answers.
func (c *Client) Ping(ctx context.Context) (*rpc.PingResponse, error) {
	tr, err := c.reader()
	if err != nil {
		return nil, err
	}
	return call[rpc.PingResponse](ctx, tr, rpc.OpPing, struct{}{})
}

// Health reports the backend's health status.
func (c *Client) Health(ctx context.Context) (*rpc.HealthResponse, error) {
	tr, err := c.reader()
	if err != nil {
		return nil, err
	}
	return call[rpc.HealthResponse](ctx, tr, rpc.OpHealth, struct{}{})
}

// List returns issues matching the filter.
func (c *Client) List(ctx context.Context, filter model.ListFilter) ([]*model.Issue, error) {
	tr, err := c.reader()
	if err != nil {
		return nil, err
	}
	args := rpc.ListArgs{
		Status:    string(filter.Status),
		Priority:  filter.Priority,
		IssueType: string(filter.IssueType),
		Assignee:  filter.Assignee,
		Labels:    filter.Labels,
		LabelsAny: filter.LabelsAny,
		Query:     filter.Query,
		Limit:     filter.Limit,
	}
	resp, err := call[rpc.ListResponse](ctx, tr, rpc.OpList, args)
	if err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// Show returns one issue with its dependency links resolved.
func (c *Client) Show(ctx context.Context, id string) (*model.Issue, error) {
	tr, err := c.reader()
	if err != nil {
		return nil, err
	}
	return call[model.Issue](ctx, tr, rpc.OpShow, rpc.ShowArgs{ID: id})
}

// Ready returns issues that can be worked on now: open or in progress with
// no unresolved blockers.
func (c *Client) Ready(ctx context.Context, filter model.ReadyFilter) ([]*model.Issue, error) {
	tr, err := c.reader()
	if err != nil {
		return nil, err
	}
	args := rpc.ReadyArgs{
		Assignee:   filter.Assignee,
		Unassigned: filter.Unassigned,
		Priority:   filter.Priority,
		Limit:      filter.Limit,
	}
	resp, err := call[rpc.ReadyResponse](ctx, tr, rpc.OpReady, args)
	if err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// Blocked returns issues that cannot proceed, each annotated with its
// unresolved blockers.
func (c *Client) Blocked(ctx context.Context) ([]*model.BlockedIssue, error) {
	tr, err := c.reader()
	if err != nil {
		return nil, err
	}
	resp, err := call[rpc.BlockedResponse](ctx, tr, rpc.OpBlocked, rpc.BlockedArgs{})
	if err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// Stats returns aggregate counts and the average lead time.
func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	tr, err := c.reader()
	if err != nil {
		return nil, err
	}
	return call[model.Stats](ctx, tr, rpc.OpStats, rpc.StatsArgs{})
}

// Create creates an issue. Requires a daemon connection. Field constraints
// are checked locally before the request goes out.
func (c *Client) Create(ctx context.Context, args rpc.CreateArgs) (*model.Issue, error) {
	tr, err := c.writer()
	if err != nil {
		return nil, err
	}
	draft := &model.Issue{
		Title:     args.Title,
		Priority:  args.Priority,
		IssueType: model.IssueType(args.IssueType),
		Status:    model.StatusOpen,
	}
	if err := model.ValidateIssue(draft); err != nil {
		return nil, err
	}
	return call[model.Issue](ctx, tr, rpc.OpCreate, args)
}

// Update applies field changes to an issue. Requires a daemon connection.
func (c *Client) Update(ctx context.Context, args rpc.UpdateArgs) (*model.Issue, error) {
	tr, err := c.writer()
	if err != nil {
		return nil, err
	}
	return call[model.Issue](ctx, tr, rpc.OpUpdate, args)
}

// CloseIssue closes an issue. Requires a daemon connection.
func (c *Client) CloseIssue(ctx context.Context, id, reason string) (*model.Issue, error) {
	tr, err := c.writer()
	if err != nil {
		return nil, err
	}
	return call[model.Issue](ctx, tr, rpc.OpClose, rpc.CloseArgs{ID: id, Reason: reason})
}

// AddDependency records a dependency edge between two issues. Requires a
// daemon connection.
func (c *Client) AddDependency(ctx context.Context, fromID, toID string, depType model.DependencyType) error {
	tr, err := c.writer()
	if err != nil {
		return err
	}
	if !depType.IsValid() {
		return fmt.Errorf("invalid dependency type %q", depType)
	}
	args := rpc.DepAddArgs{FromID: fromID, ToID: toID, DepType: string(depType)}
	_, err = tr.Send(ctx, rpc.OpDepAdd, args)
	return err
}
