package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGetLastSyncAt(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, store.SaveLastSyncAt(ctx, "patients", at))

	got, err := store.GetLastSyncAt(ctx, "patients")
	require.NoError(t, err)
	assert.True(t, at.Equal(got))
}

func TestGetLastSyncAt_NeverSynced(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetLastSyncAt(context.Background(), "patients")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSaveLastSyncAt_PerKind(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	patientsAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	labsAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveLastSyncAt(ctx, "patients", patientsAt))
	require.NoError(t, store.SaveLastSyncAt(ctx, "labs", labsAt))

	got, err := store.GetLastSyncAt(ctx, "patients")
	require.NoError(t, err)
	assert.True(t, patientsAt.Equal(got))

	got, err = store.GetLastSyncAt(ctx, "labs")
	require.NoError(t, err)
	assert.True(t, labsAt.Equal(got))
}
