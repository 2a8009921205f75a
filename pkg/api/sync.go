// Package api defines the JSON wire contract between the sync engine and
// the remote clinic service. Both the engine's HTTP client and the
// reference server implement these shapes.
package api

import (
	"encoding/json"
	"time"
)

// WriteRequest is the body of a create or update call. Every write
// carries a client-generated idempotency token; the server must
// deduplicate retried writes by it. BaseVersion is the version the
// client last saw (0 for creates); the server rejects the write with a
// 409 when its current version differs.
type WriteRequest struct {
	IdempotencyToken string          `json:"idempotency_token"`
	Data             json.RawMessage `json:"data,omitempty"`
	BaseVersion      int64           `json:"base_version"`
}

// EntityRecord is the canonical server representation of an entity.
type EntityRecord struct {
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	Version   int64           `json:"version"`
	Deleted   bool            `json:"deleted"`
}

// WriteResponse is returned on a successful write. Record always holds
// the server's canonical copy, including the server-issued identifier
// for creates.
type WriteResponse struct {
	Record EntityRecord `json:"record"`
}

// ConflictResponse is the body of a 409 response: the server's current
// record at the moment the version check failed.
type ConflictResponse struct {
	Message string       `json:"message"`
	Current EntityRecord `json:"current"`
}

// ErrorResponse is the body of any non-2xx, non-409 response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
