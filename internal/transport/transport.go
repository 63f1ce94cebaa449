// Package transport defines the capability shared by every backend that can
// answer issue-store operations: execute one named operation, release
// resources. The daemon and snapshot implementations live in subpackages;
// callers hold whichever one is active without caring which variant it is.
package transport

import (
	"context"
	"encoding/json"
)

// Transport executes named operations against an issue store.
//
// Send runs one operation and returns the raw result payload, or a typed
// error: *NotFoundError for unknown ids, ErrReadOnly for writes against a
// read-only backend, *UnreachableError when the backend cannot be reached,
// *TimeoutError when a call exceeds its deadline, and *ProtocolError when
// the backend reports a domain error.
//
// Close releases any held resources and is safe to call more than once.
type Transport interface {
	Send(ctx context.Context, operation string, args any) (json.RawMessage, error)
	Close() error
}
