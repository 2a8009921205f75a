package boltdb

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

func testConflict(id string, resolution models.Resolution) *models.ConflictRecord {
	return &models.ConflictRecord{
		ID:            id,
		Timestamp:     time.Now().UTC(),
		EntityType:    "patients",
		EntityID:      "srv-123",
		Resolution:    resolution,
		LocalData:     json.RawMessage(`{"name":"local"}`),
		ServerData:    json.RawMessage(`{"name":"server"}`),
		ServerVersion: 7,
		OperationKind: models.OpUpdate,
	}
}

func TestSaveAndGetConflict(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record := testConflict("c-1", models.ResolutionPending)
	require.NoError(t, store.SaveConflict(ctx, record))

	got, err := store.GetConflict(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "srv-123", got.EntityID)
	assert.Equal(t, int64(7), got.ServerVersion)
	assert.Equal(t, models.ResolutionPending, got.Resolution)
}

func TestGetConflict_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetConflict(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrConflictNotFound)
}

func TestPendingConflicts(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveConflict(ctx, testConflict("c-1", models.ResolutionPending)))
	require.NoError(t, store.SaveConflict(ctx, testConflict("c-2", models.ResolutionServerWins)))
	require.NoError(t, store.SaveConflict(ctx, testConflict("c-3", models.ResolutionPending)))

	pending, err := store.PendingConflicts(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	// Resolved records stay in the registry as the audit trail
	all, err := store.ListConflicts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
