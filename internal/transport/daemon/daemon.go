// Package daemon implements the transport that talks to a live bd daemon
// over its unix socket. Every call performs a complete connect, write,
// read, disconnect cycle: the daemon closes the socket after replying, so a
// persistent connection would buy nothing, and an isolated connection per
// call means a hung call cannot corrupt anyone else's.
package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/groblegark/bdclient/internal/idgen"
	"github.com/groblegark/bdclient/internal/rpc"
	"github.com/groblegark/bdclient/internal/transport"
	"github.com/groblegark/bdclient/internal/workspace"
)

// DefaultTimeout bounds each call. On expiry the connection is torn down
// and the call fails with a *transport.TimeoutError.
const DefaultTimeout = 5 * time.Second

// Starter launches the daemon process for a workspace. Spawning is an
// external collaborator: the transport only invokes it, best-effort, when
// the socket is missing during discovery.
type Starter interface {
	Start(ctx context.Context, workspaceRoot string) error
}

// Transport executes operations against the daemon socket.
type Transport struct {
	socketPath string
	actor      string
	cwd        string
	timeout    time.Duration
}

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithActor sets the actor name attached to every request.
func WithActor(actor string) Option {
	return func(t *Transport) { t.actor = actor }
}

// New creates a transport for a known socket path.
func New(socketPath string, opts ...Option) *Transport {
	t := &Transport{
		socketPath: socketPath,
		timeout:    DefaultTimeout,
	}
	if cwd, err := os.Getwd(); err == nil {
		t.cwd = cwd
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Discover locates the daemon socket by walking upward from workspaceRoot
// for the reserved .beads directory. When the socket file is missing and a
// starter is provided, the daemon is launched once and discovery retried;
// the launch is best-effort and its failure is folded into the returned
// *transport.UnreachableError.
func Discover(ctx context.Context, workspaceRoot string, starter Starter, opts ...Option) (*Transport, error) {
	path, err := socketFor(workspaceRoot)
	if err != nil && starter != nil {
		if startErr := starter.Start(ctx, workspaceRoot); startErr != nil {
			return nil, &transport.UnreachableError{Err: fmt.Errorf("%v (auto-start failed: %v)", err, startErr)}
		}
		path, err = socketFor(workspaceRoot)
	}
	if err != nil {
		return nil, &transport.UnreachableError{Err: err}
	}
	return New(path, opts...), nil
}

func socketFor(workspaceRoot string) (string, error) {
	dir, err := workspace.Find(workspaceRoot)
	if err != nil {
		return "", err
	}
	path := workspace.SocketPath(dir)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("daemon socket %s: %w", path, err)
	}
	return path, nil
}

// SocketPath returns the socket this transport dials.
func (t *Transport) SocketPath() string { return t.socketPath }

// Send executes one operation: dial, write one request line, read one
// response line, disconnect. The connection carries a deadline for the
// whole exchange; on expiry it is forcibly closed and a
// *transport.TimeoutError is returned.
func (t *Transport) Send(ctx context.Context, operation string, args any) (json.RawMessage, error) {
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling args: %w", operation, err)
	}

	req := rpc.Request{
		Operation: operation,
		Args:      rawArgs,
		Actor:     t.actor,
		Cwd:       t.cwd,
	}
	if id, err := idgen.Generate(); err == nil {
		req.RequestID = id
	}

	dialer := net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "unix", t.socketPath)
	if err != nil {
		return nil, &transport.UnreachableError{Path: t.socketPath, Err: err}
	}
	defer conn.Close()

	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%s: setting deadline: %w", operation, err)
	}

	if err := json.NewEncoder(conn).Encode(&req); err != nil {
		if isTimeout(err) {
			return nil, &transport.TimeoutError{Operation: operation, Limit: t.timeout}
		}
		return nil, fmt.Errorf("%s: writing request: %w", operation, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		if isTimeout(err) {
			return nil, &transport.TimeoutError{Operation: operation, Limit: t.timeout}
		}
		return nil, fmt.Errorf("%s: reading response: %w", operation, err)
	}

	var resp rpc.Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", operation, err)
	}
	if !resp.Success {
		return nil, &transport.ProtocolError{Operation: operation, Message: resp.Error}
	}
	return resp.Data, nil
}

// Close is a no-op: connections live only for the duration of a call.
func (t *Transport) Close() error { return nil }

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
