// Package storage defines the reference server's persistence contract:
// versioned entity records with idempotency-token deduplication on
// every write.
package storage

import (
	"context"

	"github.com/clinicore/syncengine/pkg/api"
)

//go:generate moq -out entities_mock.go . EntityStorage

// EntityStorage defines the server-side entity store. All writes are
// idempotent by token: a retried write replays the stored response
// instead of applying twice.
type EntityStorage interface {
	// CreateEntity inserts a new entity and returns its canonical
	// record with the server-issued identifier
	CreateEntity(ctx context.Context, entityType string, req api.WriteRequest) (*api.EntityRecord, error)

	// UpdateEntity applies new data. Returns VersionConflictError when
	// req.BaseVersion does not match the current version.
	UpdateEntity(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error)

	// DeleteEntity soft-deletes the entity, with the same version
	// check as UpdateEntity
	DeleteEntity(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error)

	// GetEntity returns the current record, deleted or not
	GetEntity(ctx context.Context, entityType, id string) (*api.EntityRecord, error)

	// ListEntities returns all non-deleted records of a type
	ListEntities(ctx context.Context, entityType string) ([]api.EntityRecord, error)
}
