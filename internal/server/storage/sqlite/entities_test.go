package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/syncengine/internal/server/storage"
	"github.com/clinicore/syncengine/pkg/api"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestCreateEntity(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record, err := store.CreateEntity(ctx, "patients", api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{"name":"Riya"}`),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, int64(1), record.Version)
	assert.False(t, record.Deleted)
	assert.JSONEq(t, `{"name":"Riya"}`, string(record.Data))

	got, err := store.GetEntity(ctx, "patients", record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
}

func TestCreateEntity_TokenReplay(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	req := api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{"name":"Riya"}`),
	}
	first, err := store.CreateEntity(ctx, "patients", req)
	require.NoError(t, err)

	// Replaying the token returns the stored response, no second row
	second, err := store.CreateEntity(ctx, "patients", req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Version, second.Version)

	records, err := store.ListEntities(ctx, "patients")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestUpdateEntity(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateEntity(ctx, "patients", api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{"name":"Riya"}`),
	})
	require.NoError(t, err)

	updated, err := store.UpdateEntity(ctx, "patients", created.ID, api.WriteRequest{
		IdempotencyToken: "tok-2",
		Data:             json.RawMessage(`{"name":"Riya S"}`),
		BaseVersion:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), updated.Version)
	assert.JSONEq(t, `{"name":"Riya S"}`, string(updated.Data))
}

func TestUpdateEntity_VersionConflict(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateEntity(ctx, "patients", api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{"name":"Riya"}`),
	})
	require.NoError(t, err)

	_, err = store.UpdateEntity(ctx, "patients", created.ID, api.WriteRequest{
		IdempotencyToken: "tok-stale",
		Data:             json.RawMessage(`{"name":"stale"}`),
		BaseVersion:      7,
	})

	var conflict *storage.VersionConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, created.ID, conflict.Current.ID)
	assert.Equal(t, int64(1), conflict.Current.Version)
	assert.JSONEq(t, `{"name":"Riya"}`, string(conflict.Current.Data))
}

func TestUpdateEntity_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.UpdateEntity(context.Background(), "patients", "missing", api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{}`),
		BaseVersion:      1,
	})
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestDeleteEntity(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateEntity(ctx, "patients", api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{"name":"Riya"}`),
	})
	require.NoError(t, err)

	deleted, err := store.DeleteEntity(ctx, "patients", created.ID, api.WriteRequest{
		IdempotencyToken: "tok-2",
		BaseVersion:      1,
	})
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, int64(2), deleted.Version)

	// Soft delete: gone from listings, still readable directly
	records, err := store.ListEntities(ctx, "patients")
	require.NoError(t, err)
	assert.Empty(t, records)

	got, err := store.GetEntity(ctx, "patients", created.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestGetEntity_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetEntity(context.Background(), "patients", "missing")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestGetEntity_TypeScoped(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateEntity(ctx, "patients", api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{"name":"Riya"}`),
	})
	require.NoError(t, err)

	_, err = store.GetEntity(ctx, "appointments", created.ID)
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestListEntities(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for i, name := range []string{"Riya", "Arjun"} {
		_, err := store.CreateEntity(ctx, "patients", api.WriteRequest{
			IdempotencyToken: "tok-" + name,
			Data:             json.RawMessage(`{"name":"` + name + `"}`),
		})
		require.NoError(t, err, i)
	}
	_, err := store.CreateEntity(ctx, "appointments", api.WriteRequest{
		IdempotencyToken: "tok-apt",
		Data:             json.RawMessage(`{"slot":"09:00"}`),
	})
	require.NoError(t, err)

	records, err := store.ListEntities(ctx, "patients")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
