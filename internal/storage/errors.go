package storage

import "errors"

// Common local storage errors
var (
	// ErrCacheEntryNotFound indicates no cache entry exists for the key
	ErrCacheEntryNotFound = errors.New("cache entry not found")

	// ErrEntityNotFound indicates the entity has no local snapshot
	ErrEntityNotFound = errors.New("entity not found")

	// ErrOperationNotFound indicates the queued operation does not exist
	ErrOperationNotFound = errors.New("queued operation not found")

	// ErrConflictNotFound indicates the conflict record does not exist
	ErrConflictNotFound = errors.New("conflict record not found")

	// ErrQueueFull indicates the queue depth limit was reached and the
	// mutation was refused
	ErrQueueFull = errors.New("mutation queue depth limit reached")

	// ErrStorageClosed indicates the storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
