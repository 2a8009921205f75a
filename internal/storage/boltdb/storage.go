// Package boltdb implements the engine's durable local store on top of
// bbolt: one bucket per collection, JSON values.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketCache       = []byte("cache")
	bucketQueue       = []byte("queue")
	bucketEntities    = []byte("entities")
	bucketEntityIndex = []byte("entity_index")
	bucketConflicts   = []byte("conflicts")
	bucketMeta        = []byte("meta")
)

// keySep separates composite key parts. Kinds and keys must not
// contain a NUL byte.
const keySep = "\x00"

// DefaultQueueLimit bounds the mutation queue when no per-clinic limit
// is configured. When the limit is reached new mutations are refused
// rather than old ones evicted.
const DefaultQueueLimit = 10000

// Storage represents the BoltDB local store implementation
type Storage struct {
	db         *bbolt.DB
	queueLimit int
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, queueLimit: DefaultQueueLimit}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// SetQueueLimit overrides the queue depth limit. Zero disables the
// bound.
func (s *Storage) SetQueueLimit(n int) {
	s.queueLimit = n
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates all collections if they do not exist yet
func (s *Storage) initBuckets() error {
	buckets := [][]byte{
		bucketCache,
		bucketQueue,
		bucketEntities,
		bucketEntityIndex,
		bucketConflicts,
		bucketMeta,
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// compositeKey joins key parts with the NUL separator
func compositeKey(parts ...string) []byte {
	key := parts[0]
	for _, p := range parts[1:] {
		key += keySep + p
	}
	return []byte(key)
}
