package models

import (
	"encoding/json"
	"time"
)

// LocalIDPrefix marks temporary identifiers issued for optimistic
// creates before the server has assigned a canonical one.
const LocalIDPrefix = "local-"

// EntityRecord is the local store's snapshot of one entity. The local
// store is the single source of truth for whether an entity is locally
// coherent: reads never bypass it, and the cache layer is derivable
// from it plus the remote service.
type EntityRecord struct {
	UpdatedAt  time.Time       `json:"updated_at"`
	LocalID    string          `json:"local_id"`
	ServerID   string          `json:"server_id,omitempty"`
	EntityType string          `json:"entity_type"`
	Data       json.RawMessage `json:"data,omitempty"`
	Version    int64           `json:"version"`
	Pending    bool            `json:"pending"` // true while a queued operation for this entity is unacknowledged
	Deleted    bool            `json:"deleted"`
}

// ID returns the server identifier when known, falling back to the
// temporary local one.
func (e *EntityRecord) ID() string {
	if e.ServerID != "" {
		return e.ServerID
	}
	return e.LocalID
}
