package storage

import (
	"context"

	"github.com/clinicore/syncengine/internal/models"
)

//go:generate moq -out conflict_mock.go . ConflictStorage

// ConflictStorage defines the durable conflict registry. Records are
// never deleted; resolved ones remain as the audit trail.
type ConflictStorage interface {
	// SaveConflict stores or overwrites a conflict record
	SaveConflict(ctx context.Context, record *models.ConflictRecord) error

	// GetConflict retrieves a record by id
	// Returns ErrConflictNotFound if it does not exist
	GetConflict(ctx context.Context, id string) (*models.ConflictRecord, error)

	// PendingConflicts returns all records still awaiting resolution
	PendingConflicts(ctx context.Context) ([]*models.ConflictRecord, error)

	// ListConflicts returns every record, resolved or not
	ListConflicts(ctx context.Context) ([]*models.ConflictRecord, error)
}
