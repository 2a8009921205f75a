package storage

import (
	"context"

	"github.com/clinicore/syncengine/internal/models"
)

//go:generate moq -out cache_mock.go . CacheStorage

// CacheStorage defines the durable cache collection. Entries survive
// process restart so degraded reads keep working after a crash while
// offline.
type CacheStorage interface {
	// SaveCacheEntry stores or overwrites an entry
	SaveCacheEntry(ctx context.Context, entry *models.CacheEntry) error

	// GetCacheEntry retrieves an entry by resource kind and key
	// Returns ErrCacheEntryNotFound if no entry exists
	GetCacheEntry(ctx context.Context, kind, key string) (*models.CacheEntry, error)

	// InvalidateKind removes every entry of the given resource kind
	InvalidateKind(ctx context.Context, kind string) error
}
