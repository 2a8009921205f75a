package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

func testMutation(entityType, localID string) (*models.EntityRecord, *models.QueuedOperation) {
	record := &models.EntityRecord{
		LocalID:    localID,
		EntityType: entityType,
		Data:       json.RawMessage(`{"name":"amoxicillin"}`),
		Pending:    true,
		UpdatedAt:  time.Now().UTC(),
	}
	op := &models.QueuedOperation{
		Timestamp:        time.Now().UTC(),
		Kind:             models.OpCreate,
		EntityType:       entityType,
		Status:           models.StatusPending,
		IdempotencyToken: "token-" + localID,
		EntityRef:        models.EntityRef{LocalID: localID},
		Payload:          record.Data,
	}
	return record, op
}

func TestApplyMutation_AssignsMonotonicIDs(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	var ids []uint64
	for i := 0; i < 5; i++ {
		record, op := testMutation("pharmacyInventory", fmt.Sprintf("local-%d", i))
		id, err := store.ApplyMutation(ctx, record, op)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}

func TestApplyMutation_WritesSnapshotAndOperation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record, op := testMutation("patients", "local-abc")
	id, err := store.ApplyMutation(ctx, record, op)
	require.NoError(t, err)

	// Both sides of the transaction must be visible
	got, err := store.GetOperation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OpCreate, got.Kind)
	assert.Equal(t, "local-abc", got.EntityRef.LocalID)

	entity, err := store.GetEntity(ctx, "patients", "local-abc")
	require.NoError(t, err)
	assert.True(t, entity.Pending)
	assert.JSONEq(t, `{"name":"amoxicillin"}`, string(entity.Data))
}

func TestApplyMutation_InvalidatesCachedKind(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCacheEntry(ctx, &models.CacheEntry{
		Kind:  "patients",
		Key:   "list",
		Value: []byte(`[]`),
	}))
	require.NoError(t, store.SaveCacheEntry(ctx, &models.CacheEntry{
		Kind:  "appointments",
		Key:   "list",
		Value: []byte(`[]`),
	}))

	record, op := testMutation("patients", "local-abc")
	_, err := store.ApplyMutation(ctx, record, op)
	require.NoError(t, err)

	_, err = store.GetCacheEntry(ctx, "patients", "list")
	assert.ErrorIs(t, err, storage.ErrCacheEntryNotFound)

	// Other kinds stay cached
	_, err = store.GetCacheEntry(ctx, "appointments", "list")
	assert.NoError(t, err)
}

func TestApplyMutation_QueueFull(t *testing.T) {
	store := newTestStorage(t)
	store.SetQueueLimit(2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		record, op := testMutation("patients", fmt.Sprintf("local-%d", i))
		_, err := store.ApplyMutation(ctx, record, op)
		require.NoError(t, err)
	}

	record, op := testMutation("patients", "local-overflow")
	_, err := store.ApplyMutation(ctx, record, op)
	require.ErrorIs(t, err, storage.ErrQueueFull)

	// The refused mutation must leave no trace
	_, err = store.GetEntity(ctx, "patients", "local-overflow")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	count, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListOperations_EnqueueOrder(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		record, op := testMutation("labs", fmt.Sprintf("local-%d", i))
		_, err := store.ApplyMutation(ctx, record, op)
		require.NoError(t, err)
	}

	ops, err := store.ListOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 10)
	for i := 1; i < len(ops); i++ {
		assert.Greater(t, ops[i].ID, ops[i-1].ID)
	}
}

func TestUpdateOperation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record, op := testMutation("patients", "local-abc")
	id, err := store.ApplyMutation(ctx, record, op)
	require.NoError(t, err)

	op.Status = models.StatusFailed
	op.RetryCount = 3
	op.LastError = "connection refused"
	require.NoError(t, store.UpdateOperation(ctx, op))

	got, err := store.GetOperation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Equal(t, 3, got.RetryCount)
	assert.Equal(t, "connection refused", got.LastError)
}

func TestUpdateOperation_NotFound(t *testing.T) {
	store := newTestStorage(t)

	op := &models.QueuedOperation{ID: 42}
	err := store.UpdateOperation(context.Background(), op)
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)
}

func TestDeleteOperation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record, op := testMutation("patients", "local-abc")
	id, err := store.ApplyMutation(ctx, record, op)
	require.NoError(t, err)

	require.NoError(t, store.DeleteOperation(ctx, id))

	_, err = store.GetOperation(ctx, id)
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)
}

func TestRewriteEntityRef(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Two queued operations against the same new entity, one against
	// another entity
	record, create := testMutation("patients", "local-abc")
	_, err := store.ApplyMutation(ctx, record, create)
	require.NoError(t, err)

	record2, update := testMutation("patients", "local-abc")
	update.Kind = models.OpUpdate
	updateID, err := store.ApplyMutation(ctx, record2, update)
	require.NoError(t, err)

	other, otherOp := testMutation("patients", "local-other")
	otherID, err := store.ApplyMutation(ctx, other, otherOp)
	require.NoError(t, err)

	require.NoError(t, store.RewriteEntityRef(ctx, "local-abc", "srv-123", 1))

	got, err := store.GetOperation(ctx, updateID)
	require.NoError(t, err)
	assert.Equal(t, "srv-123", got.EntityRef.ServerID)
	assert.Equal(t, int64(1), got.BaseVersion)

	untouched, err := store.GetOperation(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, untouched.EntityRef.ServerID)
	assert.Zero(t, untouched.BaseVersion)
}

func TestRewriteEntityRef_KeepsExistingServerID(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record, update := testMutation("patients", "local-abc")
	update.Kind = models.OpUpdate
	update.EntityRef.ServerID = "srv-123"
	update.BaseVersion = 1
	id, err := store.ApplyMutation(ctx, record, update)
	require.NoError(t, err)

	// A later confirm for the same entity bumps only the version
	require.NoError(t, store.RewriteEntityRef(ctx, "local-abc", "srv-123", 2))

	got, err := store.GetOperation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "srv-123", got.EntityRef.ServerID)
	assert.Equal(t, int64(2), got.BaseVersion)
}

func TestCountPending_ExcludesExhausted(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record, op := testMutation("patients", "local-1")
	_, err := store.ApplyMutation(ctx, record, op)
	require.NoError(t, err)

	record2, op2 := testMutation("patients", "local-2")
	_, err = store.ApplyMutation(ctx, record2, op2)
	require.NoError(t, err)

	op2.Exhausted = true
	require.NoError(t, store.UpdateOperation(ctx, op2))

	count, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecoverInFlight(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record, op := testMutation("patients", "local-1")
	_, err := store.ApplyMutation(ctx, record, op)
	require.NoError(t, err)

	inFlightRec, inFlight := testMutation("patients", "local-2")
	id, err := store.ApplyMutation(ctx, inFlightRec, inFlight)
	require.NoError(t, err)
	inFlight.Status = models.StatusInFlight
	require.NoError(t, store.UpdateOperation(ctx, inFlight))

	recovered, err := store.RecoverInFlight(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, recovered)

	got, err := store.GetOperation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.True(t, got.Ready(time.Now()))
}

func TestQueue_SurvivesReopen(t *testing.T) {
	dbPath := fmt.Sprintf("%s/queue.db", t.TempDir())
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	record, op := testMutation("pharmacyInventory", "local-abc")
	id, err := store.ApplyMutation(ctx, record, op)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	got, err := reopened.GetOperation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "token-local-abc", got.IdempotencyToken)

	entity, err := reopened.GetEntity(ctx, "pharmacyInventory", "local-abc")
	require.NoError(t, err)
	assert.True(t, entity.Pending)
}
