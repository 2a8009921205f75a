package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines per-entity-kind sync bookkeeping.
type MetadataStorage interface {
	// SaveLastSyncAt records the time an entity kind last drained
	// successfully
	SaveLastSyncAt(ctx context.Context, entityType string, at time.Time) error

	// GetLastSyncAt retrieves the last successful sync time for a kind
	// Returns the zero time if the kind has never synced
	GetLastSyncAt(ctx context.Context, entityType string) (time.Time, error)
}
