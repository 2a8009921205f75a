package models

import (
	"encoding/json"
	"time"
)

// Resolution is the outcome of a conflict.
type Resolution string

// Conflict resolutions
const (
	ResolutionPending    Resolution = "PENDING"
	ResolutionLocalWins  Resolution = "LOCAL_WINS"
	ResolutionServerWins Resolution = "SERVER_WINS"
	ResolutionMerged     Resolution = "MERGED"
)

// Valid reports whether r is a recognized resolution outcome (something
// resolveConflict may be called with; PENDING is not an outcome).
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionLocalWins, ResolutionServerWins, ResolutionMerged:
		return true
	}
	return false
}

// ConflictRecord captures a detected divergence between a queued local
// change and the server's current state for the same entity. Records
// are immutable once Resolution is set to anything other than PENDING,
// and are never deleted: they are the audit trail.
type ConflictRecord struct {
	Timestamp     time.Time       `json:"timestamp"`
	ResolvedAt    time.Time       `json:"resolved_at,omitzero"`
	ID            string          `json:"id"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	ResolvedBy    string          `json:"resolved_by,omitempty"`
	Resolution    Resolution      `json:"resolution"`
	LocalData     json.RawMessage `json:"local_data,omitempty"`
	ServerData    json.RawMessage `json:"server_data,omitempty"`
	ServerVersion int64           `json:"server_version"`
	OperationKind OpKind          `json:"operation_kind"`
	ServerDeleted bool            `json:"server_deleted"`
}
