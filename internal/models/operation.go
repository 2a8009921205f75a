package models

import (
	"encoding/json"
	"time"
)

// OpKind is the kind of a queued write operation.
type OpKind string

// Operation kinds
const (
	OpCreate OpKind = "CREATE"
	OpUpdate OpKind = "UPDATE"
	OpDelete OpKind = "DELETE"
)

// OpStatus is the lifecycle state of a queued operation.
type OpStatus string

// Operation statuses
const (
	StatusPending  OpStatus = "PENDING"   // waiting for its first send
	StatusInFlight OpStatus = "IN_FLIGHT" // currently being sent by a drain pass
	StatusFailed   OpStatus = "FAILED"    // transient failure, scheduled for retry
	StatusDone     OpStatus = "DONE"      // acknowledged by the server
)

// EntityRef identifies the entity an operation targets. LocalID is
// assigned when the operation is enqueued; ServerID is filled in once
// the server acknowledges the entity's CREATE.
type EntityRef struct {
	LocalID  string `json:"local_id"`
	ServerID string `json:"server_id,omitempty"`
}

// QueuedOperation is one durable pending write. It is created
// synchronously by Mutate, before any network attempt, and mutated only
// by the scheduler during drain.
type QueuedOperation struct {
	Timestamp        time.Time       `json:"timestamp"`
	NextRetryAt      time.Time       `json:"next_retry_at,omitzero"`
	Kind             OpKind          `json:"kind"`
	EntityType       string          `json:"entity_type"`
	Status           OpStatus        `json:"status"`
	IdempotencyToken string          `json:"idempotency_token"`
	LastError        string          `json:"last_error,omitempty"`
	EntityRef        EntityRef       `json:"entity_ref"`
	Payload          json.RawMessage `json:"payload,omitempty"`
	ID               uint64          `json:"id"`
	BaseVersion      int64           `json:"base_version"`
	RetryCount       int             `json:"retry_count"`
	Exhausted        bool            `json:"exhausted"`
}

// Ready reports whether the operation is eligible to be sent at the
// given time. Exhausted operations are never ready; they require
// operator intervention.
func (op *QueuedOperation) Ready(now time.Time) bool {
	if op.Exhausted || op.Status == StatusDone {
		return false
	}
	return op.NextRetryAt.IsZero() || !op.NextRetryAt.After(now)
}

// Clone returns a deep copy of the operation.
func (op *QueuedOperation) Clone() *QueuedOperation {
	clone := *op
	clone.Payload = make(json.RawMessage, len(op.Payload))
	copy(clone.Payload, op.Payload)
	return &clone
}
