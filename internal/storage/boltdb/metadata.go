package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/clinicore/syncengine/internal/storage"
)

const lastSyncPrefix = "last_sync_at"

// SaveLastSyncAt records the time an entity kind last drained
// successfully
func (s *Storage) SaveLastSyncAt(ctx context.Context, entityType string, at time.Time) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		key := compositeKey(lastSyncPrefix, entityType)
		return tx.Bucket(bucketMeta).Put(key, []byte(at.UTC().Format(time.RFC3339Nano)))
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetLastSyncAt retrieves the last successful sync time for a kind,
// returning the zero time if the kind has never synced
func (s *Storage) GetLastSyncAt(ctx context.Context, entityType string) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrStorageClosed
	}

	var at time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(compositeKey(lastSyncPrefix, entityType))
		if data == nil {
			return nil
		}

		parsed, err := time.Parse(time.RFC3339Nano, string(data))
		if err != nil {
			return fmt.Errorf("failed to parse last sync time: %w", err)
		}
		at = parsed
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	return at, nil
}
