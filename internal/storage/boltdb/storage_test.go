package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

// newTestStorage opens a fresh database in a temp dir and closes it
// when the test finishes.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestNew_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// All collections must exist after New
	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{
			bucketCache, bucketQueue, bucketEntities,
			bucketEntityIndex, bucketConflicts, bucketMeta,
		} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	invalidPath := string([]byte{0})
	store, err := New(context.Background(), invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestCompositeKey(t *testing.T) {
	assert.Equal(t, []byte("patients"), compositeKey("patients"))
	assert.Equal(t, []byte("patients\x00p-1"), compositeKey("patients", "p-1"))
	assert.Equal(t, []byte("a\x00b\x00c"), compositeKey("a", "b", "c"))
}
