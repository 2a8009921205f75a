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

// SaveEntity stores or overwrites an entity snapshot, maintaining the
// server-id index
func (s *Storage) SaveEntity(ctx context.Context, record *models.EntityRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return saveEntityTx(tx, record)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// saveEntityTx writes a snapshot inside an open write transaction
func saveEntityTx(tx *bbolt.Tx, record *models.EntityRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	key := compositeKey(record.EntityType, record.LocalID)
	if err := tx.Bucket(bucketEntities).Put(key, data); err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	if record.ServerID != "" {
		idxKey := compositeKey(record.EntityType, record.ServerID)
		if err := tx.Bucket(bucketEntityIndex).Put(idxKey, []byte(record.LocalID)); err != nil {
			return fmt.Errorf("failed to index entity: %w", err)
		}
	}

	return nil
}

// GetEntity retrieves a snapshot by local or server id
func (s *Storage) GetEntity(ctx context.Context, entityType, id string) (*models.EntityRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record *models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		entities := tx.Bucket(bucketEntities)

		data := entities.Get(compositeKey(entityType, id))
		if data == nil {
			// Not a local id; try the server-id index
			localID := tx.Bucket(bucketEntityIndex).Get(compositeKey(entityType, id))
			if localID == nil {
				return storage.ErrEntityNotFound
			}
			data = entities.Get(compositeKey(entityType, string(localID)))
			if data == nil {
				return storage.ErrEntityNotFound
			}
		}

		record = &models.EntityRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListEntities returns all non-deleted snapshots of a type
func (s *Storage) ListEntities(ctx context.Context, entityType string) ([]*models.EntityRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		prefix := append(compositeKey(entityType), keySep...)
		cursor := tx.Bucket(bucketEntities).Cursor()

		for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
			var record models.EntityRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal entity: %w", err)
			}
			if !record.Deleted {
				records = append(records, &record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	return records, nil
}
