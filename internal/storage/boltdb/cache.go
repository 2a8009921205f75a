package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

// SaveCacheEntry stores or overwrites a cache entry
func (s *Storage) SaveCacheEntry(ctx context.Context, entry *models.CacheEntry) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if err := bucket.Put(compositeKey(entry.Kind, entry.Key), data); err != nil {
			return fmt.Errorf("failed to save cache entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetCacheEntry retrieves a cache entry by kind and key
func (s *Storage) GetCacheEntry(ctx context.Context, kind, key string) (*models.CacheEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entry *models.CacheEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCache).Get(compositeKey(kind, key))
		if data == nil {
			return storage.ErrCacheEntryNotFound
		}

		entry = &models.CacheEntry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("failed to unmarshal cache entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// InvalidateKind removes every cache entry of the given resource kind
func (s *Storage) InvalidateKind(ctx context.Context, kind string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return invalidateKindTx(tx, kind)
	})
	if err != nil {
		return fmt.Errorf("invalidate transaction failed: %w", err)
	}

	return nil
}

// invalidateKindTx deletes all entries with the kind prefix inside an
// open write transaction
func invalidateKindTx(tx *bbolt.Tx, kind string) error {
	prefix := append(compositeKey(kind), keySep...)
	cursor := tx.Bucket(bucketCache).Cursor()

	for k, _ := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = cursor.Next() {
		if err := cursor.Delete(); err != nil {
			return fmt.Errorf("failed to delete cache entry: %w", err)
		}
	}
	return nil
}
