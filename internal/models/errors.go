package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Engine error taxonomy. Transient network errors are absorbed by the
// scheduler and never reach a Mutate caller; validation, conflict, and
// storage failures are surfaced where they occur.
var (
	// ErrNotAvailableOffline indicates a read for which no value has
	// ever been cached and the remote service is unreachable.
	ErrNotAvailableOffline = errors.New("resource not available offline")

	// ErrQueueFull indicates the mutation queue has reached its
	// configured depth limit; the write was refused, not applied.
	ErrQueueFull = errors.New("mutation queue is full")

	// ErrRetriesExhausted marks an operation whose retry budget ran
	// out; it requires operator intervention.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// NetworkError wraps a transient transport failure. Operations failing
// with it are retried with backoff.
type NetworkError struct {
	Err error
	Op  string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError indicates the remote service rejected a payload. It
// is never retried.
type ValidationError struct {
	Message    string
	StatusCode int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payload rejected by server (%d): %s", e.StatusCode, e.Message)
}

// ConflictError indicates the server's version of an entity changed
// since the client's last known version. It carries the server's
// current record so a ConflictRecord can capture both sides.
type ConflictError struct {
	Message       string
	ServerID      string
	ServerData    json.RawMessage
	ServerVersion int64
	ServerDeleted bool
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict on %s (server version %d): %s", e.ServerID, e.ServerVersion, e.Message)
}

// IsTransient reports whether err should be retried with backoff.
func IsTransient(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
