package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
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

func testOp(id uint64) *models.QueuedOperation {
	return &models.QueuedOperation{
		ID:               id,
		Timestamp:        time.Now().UTC(),
		Kind:             models.OpUpdate,
		EntityType:       "patients",
		Status:           models.StatusPending,
		IdempotencyToken: "tok-1",
		EntityRef:        models.EntityRef{LocalID: "local-1", ServerID: "srv-1"},
		Payload:          json.RawMessage(`{"name":"Riya"}`),
	}
}

// updateRecorder captures the last operation state written to storage.
func updateRecorder(last **models.QueuedOperation) *storage.QueueStorageMock {
	return &storage.QueueStorageMock{
		UpdateOperationFunc: func(ctx context.Context, op *models.QueuedOperation) error {
			clone := op.Clone()
			*last = clone
			return nil
		},
	}
}

func TestEnqueue(t *testing.T) {
	store := &storage.QueueStorageMock{
		ApplyMutationFunc: func(ctx context.Context, record *models.EntityRecord, op *models.QueuedOperation) (uint64, error) {
			op.ID = 7
			return 7, nil
		},
	}
	svc := NewService(store, DefaultConfig(), testLogger())

	record := &models.EntityRecord{LocalID: "local-1", EntityType: "patients"}
	op := testOp(0)
	require.NoError(t, svc.Enqueue(context.Background(), record, op))
	assert.Len(t, store.ApplyMutationCalls(), 1)
}

func TestEnqueue_QueueFull(t *testing.T) {
	store := &storage.QueueStorageMock{
		ApplyMutationFunc: func(ctx context.Context, record *models.EntityRecord, op *models.QueuedOperation) (uint64, error) {
			return 0, storage.ErrQueueFull
		},
	}
	svc := NewService(store, DefaultConfig(), testLogger())

	err := svc.Enqueue(context.Background(), &models.EntityRecord{}, testOp(0))
	assert.ErrorIs(t, err, models.ErrQueueFull)
}

func TestSnapshot_ExcludesExhausted(t *testing.T) {
	exhausted := testOp(2)
	exhausted.Exhausted = true
	store := &storage.QueueStorageMock{
		ListOperationsFunc: func(ctx context.Context) ([]*models.QueuedOperation, error) {
			return []*models.QueuedOperation{testOp(1), exhausted, testOp(3)}, nil
		},
	}
	svc := NewService(store, DefaultConfig(), testLogger())

	live, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, uint64(1), live[0].ID)
	assert.Equal(t, uint64(3), live[1].ID)
}

func TestMarkFailed_SchedulesBackoff(t *testing.T) {
	var last *models.QueuedOperation
	store := updateRecorder(&last)

	cfg := Config{
		BaseDelay:     30 * time.Second,
		MaxDelay:      30 * time.Minute,
		JitterPercent: 0,
		MaxRetries:    10,
	}
	svc := NewService(store, cfg, testLogger())

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	op := testOp(1)

	exhausted, err := svc.MarkFailed(context.Background(), op, errors.New("connection refused"), now)
	require.NoError(t, err)
	assert.False(t, exhausted)
	assert.Equal(t, models.StatusFailed, last.Status)
	assert.Equal(t, 1, last.RetryCount)
	assert.Equal(t, "connection refused", last.LastError)
	assert.True(t, last.NextRetryAt.Equal(now.Add(30*time.Second)))

	// Second failure doubles the delay
	exhausted, err = svc.MarkFailed(context.Background(), op, errors.New("connection refused"), now)
	require.NoError(t, err)
	assert.False(t, exhausted)
	assert.True(t, last.NextRetryAt.Equal(now.Add(time.Minute)))

	// Operation is not ready until the delay elapses
	assert.False(t, last.Ready(now))
	assert.False(t, last.Ready(now.Add(59*time.Second)))
	assert.True(t, last.Ready(now.Add(time.Minute)))
}

func TestMarkFailed_DelayCapped(t *testing.T) {
	var last *models.QueuedOperation
	store := updateRecorder(&last)

	cfg := Config{
		BaseDelay:     30 * time.Second,
		MaxDelay:      2 * time.Minute,
		JitterPercent: 0,
		MaxRetries:    20,
	}
	svc := NewService(store, cfg, testLogger())

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	op := testOp(1)
	op.RetryCount = 9 // next is attempt 10, uncapped would be hours

	_, err := svc.MarkFailed(context.Background(), op, errors.New("timeout"), now)
	require.NoError(t, err)
	assert.True(t, last.NextRetryAt.Equal(now.Add(2*time.Minute)))
}

func TestMarkFailed_ExhaustsAtBudget(t *testing.T) {
	var last *models.QueuedOperation
	store := updateRecorder(&last)

	cfg := DefaultConfig()
	cfg.MaxRetries = 3
	svc := NewService(store, cfg, testLogger())

	now := time.Now().UTC()
	op := testOp(1)
	op.RetryCount = 2

	exhausted, err := svc.MarkFailed(context.Background(), op, errors.New("timeout"), now)
	require.NoError(t, err)
	assert.True(t, exhausted)
	assert.True(t, last.Exhausted)
	assert.True(t, last.NextRetryAt.IsZero())
	assert.False(t, last.Ready(now.Add(24*time.Hour)))
}

func TestMarkRejected_Terminal(t *testing.T) {
	var last *models.QueuedOperation
	store := updateRecorder(&last)
	svc := NewService(store, DefaultConfig(), testLogger())

	op := testOp(1)
	require.NoError(t, svc.MarkRejected(context.Background(), op, errors.New("validation failed: dosage out of range")))

	assert.True(t, last.Exhausted)
	assert.Equal(t, models.StatusFailed, last.Status)
	assert.Contains(t, last.LastError, "dosage out of range")
	assert.False(t, last.Ready(time.Now().Add(time.Hour)))
}

func TestMarkInterrupted_NoBudgetCharge(t *testing.T) {
	var last *models.QueuedOperation
	store := updateRecorder(&last)
	svc := NewService(store, DefaultConfig(), testLogger())

	op := testOp(1)
	op.Status = models.StatusInFlight
	op.RetryCount = 4

	require.NoError(t, svc.MarkInterrupted(context.Background(), op))

	assert.Equal(t, models.StatusFailed, last.Status)
	assert.Equal(t, 4, last.RetryCount)
	assert.False(t, last.Exhausted)
	assert.True(t, last.Ready(time.Now()))
}

func TestMarkDone_Prunes(t *testing.T) {
	store := &storage.QueueStorageMock{
		DeleteOperationFunc: func(ctx context.Context, id uint64) error {
			return nil
		},
	}
	svc := NewService(store, DefaultConfig(), testLogger())

	op := testOp(9)
	require.NoError(t, svc.MarkDone(context.Background(), op))

	calls := store.DeleteOperationCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, uint64(9), calls[0].ID)
}

func TestListExhausted(t *testing.T) {
	exhausted := testOp(2)
	exhausted.Exhausted = true
	store := &storage.QueueStorageMock{
		ListOperationsFunc: func(ctx context.Context) ([]*models.QueuedOperation, error) {
			return []*models.QueuedOperation{testOp(1), exhausted}, nil
		},
	}
	svc := NewService(store, DefaultConfig(), testLogger())

	ops, err := svc.ListExhausted(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, uint64(2), ops[0].ID)
}

func TestBackoffDelay_ZeroJitterIsExact(t *testing.T) {
	svc := NewService(&storage.QueueStorageMock{}, Config{
		BaseDelay:     30 * time.Second,
		MaxDelay:      30 * time.Minute,
		JitterPercent: 0,
		MaxRetries:    10,
	}, testLogger()).(*service)

	// The jitter wrapper rejects a zero percentage; without it the
	// delays are the plain capped exponential
	assert.Equal(t, 30*time.Second, svc.backoffDelay(1))
	assert.Equal(t, 60*time.Second, svc.backoffDelay(2))
	assert.Equal(t, 120*time.Second, svc.backoffDelay(3))
	assert.Equal(t, 30*time.Minute, svc.backoffDelay(10))
}

func TestBackoffDelay_JitterStaysBounded(t *testing.T) {
	svc := NewService(&storage.QueueStorageMock{}, Config{
		BaseDelay:     30 * time.Second,
		MaxDelay:      30 * time.Minute,
		JitterPercent: 10,
		MaxRetries:    10,
	}, testLogger()).(*service)

	for attempt := 1; attempt <= 5; attempt++ {
		delay := svc.backoffDelay(attempt)
		base := 30 * time.Second << (attempt - 1)
		low := base - base/10
		high := base + base/10
		assert.GreaterOrEqual(t, delay, low, "attempt %d", attempt)
		assert.LessOrEqual(t, delay, high, "attempt %d", attempt)
	}
}
