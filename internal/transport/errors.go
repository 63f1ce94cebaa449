package transport

import (
	"errors"
	"fmt"
	"time"
)

// ErrReadOnly is returned when a mutation is attempted against a backend
// that cannot write, such as the snapshot transport.
var ErrReadOnly = errors.New("read-only connection: operation requires a daemon connection")

// NotFoundError indicates a query referenced an id absent from the active
// data source.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("issue %s not found", e.ID)
}

// UnreachableError indicates the daemon socket could not be discovered or
// opened.
type UnreachableError struct {
	Path string
	Err  error
}

func (e *UnreachableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("daemon unreachable: %v", e.Err)
	}
	return fmt.Sprintf("daemon unreachable at %s: %v", e.Path, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// TimeoutError indicates a daemon call exceeded its deadline and the
// underlying connection was torn down.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no response from daemon within %s", e.Operation, e.Limit)
}

// Timeout reports true so the error satisfies net.Error-style checks.
func (e *TimeoutError) Timeout() bool { return true }

// ProtocolError carries an error payload reported by the daemon, surfaced
// verbatim to the caller.
type ProtocolError struct {
	Operation string
	Message   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: daemon error: %s", e.Operation, e.Message)
}
