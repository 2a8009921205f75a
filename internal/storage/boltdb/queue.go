package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

// opKey encodes an operation id as a big-endian key so bucket iteration
// order is enqueue order
func opKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// ApplyMutation atomically writes the optimistic entity snapshot,
// appends the queued operation, and drops cached entries of the
// entity's kind. This single transaction is what makes a mutation
// durable: either the snapshot and the sync intent both exist, or
// neither does.
func (s *Storage) ApplyMutation(ctx context.Context, record *models.EntityRecord, op *models.QueuedOperation) (uint64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var id uint64

	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)

		if s.queueLimit > 0 && queue.Stats().KeyN >= s.queueLimit {
			return storage.ErrQueueFull
		}

		seq, err := queue.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate operation id: %w", err)
		}
		op.ID = seq

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}
		if err := queue.Put(opKey(seq), data); err != nil {
			return fmt.Errorf("failed to append operation: %w", err)
		}

		if err := saveEntityTx(tx, record); err != nil {
			return err
		}

		if err := invalidateKindTx(tx, record.EntityType); err != nil {
			return err
		}

		id = seq
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetOperation retrieves one operation by id
func (s *Storage) GetOperation(ctx context.Context, id uint64) (*models.QueuedOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var op *models.QueuedOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketQueue).Get(opKey(id))
		if data == nil {
			return storage.ErrOperationNotFound
		}

		op = &models.QueuedOperation{}
		if err := json.Unmarshal(data, op); err != nil {
			return fmt.Errorf("failed to unmarshal operation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return op, nil
}

// ListOperations returns all live operations in enqueue order
func (s *Storage) ListOperations(ctx context.Context) ([]*models.QueuedOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*models.QueuedOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQueue).ForEach(func(k, v []byte) error {
			var op models.QueuedOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}
			ops = append(ops, &op)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	return ops, nil
}

// UpdateOperation overwrites an existing operation's record
func (s *Storage) UpdateOperation(ctx context.Context, op *models.QueuedOperation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		if queue.Get(opKey(op.ID)) == nil {
			return storage.ErrOperationNotFound
		}

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}
		return queue.Put(opKey(op.ID), data)
	})
	if err != nil {
		return fmt.Errorf("update transaction failed: %w", err)
	}

	return nil
}

// DeleteOperation prunes an acknowledged operation
func (s *Storage) DeleteOperation(ctx context.Context, id uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQueue).Delete(opKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}

	return nil
}

// RewriteEntityRef propagates a confirmed sibling's server id and
// version onto every operation still queued for the same entity
func (s *Storage) RewriteEntityRef(ctx context.Context, localID, serverID string, baseVersion int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		cursor := queue.Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var op models.QueuedOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}

			if op.EntityRef.LocalID != localID {
				continue
			}

			if op.EntityRef.ServerID == "" {
				op.EntityRef.ServerID = serverID
			}
			op.BaseVersion = baseVersion
			data, err := json.Marshal(&op)
			if err != nil {
				return fmt.Errorf("failed to marshal operation: %w", err)
			}
			if err := queue.Put(opKey(op.ID), data); err != nil {
				return fmt.Errorf("failed to rewrite operation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rewrite transaction failed: %w", err)
	}

	return nil
}

// CountPending returns the number of operations awaiting sync,
// excluding exhausted ones
func (s *Storage) CountPending(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQueue).ForEach(func(k, v []byte) error {
			var op models.QueuedOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}
			if !op.Exhausted {
				count++
			}
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending operations: %w", err)
	}

	return count, nil
}

// RecoverInFlight marks any IN_FLIGHT operation as FAILED with an
// immediate retry. Called at startup so a crash mid-drain leaves
// nothing ambiguous.
func (s *Storage) RecoverInFlight(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var recovered int

	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		cursor := queue.Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var op models.QueuedOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}

			if op.Status != models.StatusInFlight {
				continue
			}

			op.Status = models.StatusFailed
			op.NextRetryAt = op.Timestamp // zero delay, retried on the next pass
			data, err := json.Marshal(&op)
			if err != nil {
				return fmt.Errorf("failed to marshal operation: %w", err)
			}
			if err := queue.Put(opKey(op.ID), data); err != nil {
				return fmt.Errorf("failed to recover operation: %w", err)
			}
			recovered++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("recover transaction failed: %w", err)
	}

	return recovered, nil
}
