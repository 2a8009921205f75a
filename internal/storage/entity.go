package storage

import (
	"context"

	"github.com/clinicore/syncengine/internal/models"
)

//go:generate moq -out entity_mock.go . EntityStorage

// EntityStorage defines the local entity snapshot collection: the
// single source of truth for locally coherent state. Snapshots are
// keyed by entity type and local id, with a secondary index from server
// id once one is known.
type EntityStorage interface {
	// SaveEntity stores or overwrites a snapshot, maintaining the
	// server-id index
	SaveEntity(ctx context.Context, record *models.EntityRecord) error

	// GetEntity retrieves a snapshot by local or server id
	// Returns ErrEntityNotFound if no snapshot exists
	GetEntity(ctx context.Context, entityType, id string) (*models.EntityRecord, error)

	// ListEntities returns all non-deleted snapshots of a type
	ListEntities(ctx context.Context, entityType string) ([]*models.EntityRecord, error)
}
