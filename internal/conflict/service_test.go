package conflict

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// memoryConflictStore backs the mock with a map so records round-trip.
func memoryConflictStore() *storage.ConflictStorageMock {
	var mu sync.Mutex
	records := make(map[string]*models.ConflictRecord)

	return &storage.ConflictStorageMock{
		SaveConflictFunc: func(ctx context.Context, record *models.ConflictRecord) error {
			mu.Lock()
			defer mu.Unlock()
			clone := *record
			records[record.ID] = &clone
			return nil
		},
		GetConflictFunc: func(ctx context.Context, id string) (*models.ConflictRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			record, ok := records[id]
			if !ok {
				return nil, storage.ErrConflictNotFound
			}
			clone := *record
			return &clone, nil
		},
		PendingConflictsFunc: func(ctx context.Context) ([]*models.ConflictRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			var pending []*models.ConflictRecord
			for _, record := range records {
				if record.Resolution == models.ResolutionPending {
					clone := *record
					pending = append(pending, &clone)
				}
			}
			return pending, nil
		},
		ListConflictsFunc: func(ctx context.Context) ([]*models.ConflictRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			var all []*models.ConflictRecord
			for _, record := range records {
				clone := *record
				all = append(all, &clone)
			}
			return all, nil
		},
	}
}

func testConflictOp() *models.QueuedOperation {
	return &models.QueuedOperation{
		ID:         1,
		Kind:       models.OpUpdate,
		EntityType: "patients",
		EntityRef:  models.EntityRef{LocalID: "local-1", ServerID: "srv-1"},
		Payload:    json.RawMessage(`{"name":"local edit"}`),
	}
}

func testCause() *models.ConflictError {
	return &models.ConflictError{
		Message:       "version conflict",
		ServerID:      "srv-1",
		ServerData:    json.RawMessage(`{"name":"server edit"}`),
		ServerVersion: 5,
	}
}

func TestRecord(t *testing.T) {
	svc := NewService(memoryConflictStore(), testLogger())
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	record, err := svc.Record(context.Background(), testConflictOp(), testCause(), now)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "patients", record.EntityType)
	assert.Equal(t, "srv-1", record.EntityID)
	assert.Equal(t, models.ResolutionPending, record.Resolution)
	assert.JSONEq(t, `{"name":"local edit"}`, string(record.LocalData))
	assert.JSONEq(t, `{"name":"server edit"}`, string(record.ServerData))
	assert.Equal(t, int64(5), record.ServerVersion)
	assert.Equal(t, models.OpUpdate, record.OperationKind)
	assert.True(t, record.Timestamp.Equal(now))
}

func TestRecord_FallsBackToLocalID(t *testing.T) {
	svc := NewService(memoryConflictStore(), testLogger())

	op := testConflictOp()
	op.EntityRef.ServerID = ""

	record, err := svc.Record(context.Background(), op, testCause(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "local-1", record.EntityID)
}

func TestResolve(t *testing.T) {
	svc := NewService(memoryConflictStore(), testLogger())
	ctx := context.Background()

	record, err := svc.Record(ctx, testConflictOp(), testCause(), time.Now())
	require.NoError(t, err)

	resolvedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	resolved, err := svc.Resolve(ctx, record.ID, models.ResolutionServerWins, "dr.mehta", resolvedAt)
	require.NoError(t, err)
	assert.Equal(t, models.ResolutionServerWins, resolved.Resolution)
	assert.Equal(t, "dr.mehta", resolved.ResolvedBy)
	assert.True(t, resolved.ResolvedAt.Equal(resolvedAt))

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResolve_Twice(t *testing.T) {
	svc := NewService(memoryConflictStore(), testLogger())
	ctx := context.Background()

	record, err := svc.Record(ctx, testConflictOp(), testCause(), time.Now())
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, record.ID, models.ResolutionLocalWins, "dr.mehta", time.Now())
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, record.ID, models.ResolutionServerWins, "dr.mehta", time.Now())
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolve_InvalidResolution(t *testing.T) {
	svc := NewService(memoryConflictStore(), testLogger())

	_, err := svc.Resolve(context.Background(), "c-1", models.ResolutionPending, "dr.mehta", time.Now())
	assert.ErrorIs(t, err, ErrInvalidResolution)

	_, err = svc.Resolve(context.Background(), "c-1", models.Resolution("COIN_FLIP"), "dr.mehta", time.Now())
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestResolve_NotFound(t *testing.T) {
	svc := NewService(memoryConflictStore(), testLogger())

	_, err := svc.Resolve(context.Background(), "missing", models.ResolutionServerWins, "dr.mehta", time.Now())
	assert.ErrorIs(t, err, storage.ErrConflictNotFound)
}
