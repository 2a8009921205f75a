// Package queue implements the durable mutation queue: the ordered log
// of pending writes the scheduler drains against the remote service.
// Operations are FIFO per entity and unordered across entities.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

// Config holds the retry policy for failed operations.
type Config struct {
	// BaseDelay is the first retry delay; it doubles on each attempt
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth
	MaxDelay time.Duration
	// JitterPercent randomizes each delay by +/- this percentage
	JitterPercent uint64
	// MaxRetries is the attempt budget before an operation is marked
	// exhausted and requires operator intervention
	MaxRetries int
}

// DefaultConfig returns the stock retry policy: 30s base, doubling,
// capped at 30 minutes, 10 attempts.
func DefaultConfig() Config {
	return Config{
		BaseDelay:     30 * time.Second,
		MaxDelay:      30 * time.Minute,
		JitterPercent: 10,
		MaxRetries:    10,
	}
}

// Service defines the mutation queue operations
type Service interface {
	// Enqueue atomically applies the optimistic snapshot and appends
	// the operation. Never touches the network.
	Enqueue(ctx context.Context, record *models.EntityRecord, op *models.QueuedOperation) error

	// Snapshot returns detached copies of all live (non-exhausted)
	// operations in enqueue order. A drain pass works over one
	// snapshot; operations appended during the pass wait for the next
	// one.
	Snapshot(ctx context.Context) ([]*models.QueuedOperation, error)

	// MarkInFlight records that an operation is being sent
	MarkInFlight(ctx context.Context, op *models.QueuedOperation) error

	// MarkDone prunes an acknowledged operation
	MarkDone(ctx context.Context, op *models.QueuedOperation) error

	// MarkFailed records a transient failure, schedules the retry, and
	// reports whether the operation's retry budget is now exhausted
	MarkFailed(ctx context.Context, op *models.QueuedOperation, cause error, now time.Time) (bool, error)

	// MarkRejected terminally fails an operation the server refused as
	// invalid. It surfaces on the exhausted list; it is never retried.
	MarkRejected(ctx context.Context, op *models.QueuedOperation, cause error) error

	// MarkInterrupted returns an in-flight operation to FAILED with an
	// immediate retry after a cancelled drain pass. The retry budget
	// is not charged: cancellation is not a send failure.
	MarkInterrupted(ctx context.Context, op *models.QueuedOperation) error

	// PropagateConfirm rewrites a confirmed operation's server id and
	// version onto every operation still queued for the same entity,
	// so the next sibling is sent against the version the server just
	// assigned rather than the one captured at enqueue time
	PropagateConfirm(ctx context.Context, localID, serverID string, serverVersion int64) error

	// PendingCount returns the number of operations awaiting sync
	PendingCount(ctx context.Context) (int, error)

	// ListExhausted returns operations needing operator attention
	ListExhausted(ctx context.Context) ([]*models.QueuedOperation, error)

	// RecoverInFlight resolves operations left IN_FLIGHT by a crash
	RecoverInFlight(ctx context.Context) (int, error)
}

type service struct {
	store  storage.QueueStorage
	logger *slog.Logger
	cfg    Config
}

// NewService creates a new mutation queue service
func NewService(store storage.QueueStorage, cfg Config, logger *slog.Logger) Service {
	if cfg.BaseDelay <= 0 {
		cfg = DefaultConfig()
	}
	return &service{
		store:  store,
		logger: logger,
		cfg:    cfg,
	}
}

// Enqueue atomically applies the optimistic snapshot and appends the
// operation
func (s *service) Enqueue(ctx context.Context, record *models.EntityRecord, op *models.QueuedOperation) error {
	id, err := s.store.ApplyMutation(ctx, record, op)
	if err != nil {
		if errors.Is(err, storage.ErrQueueFull) {
			return fmt.Errorf("%w: refusing mutation for %s", models.ErrQueueFull, op.EntityType)
		}
		return fmt.Errorf("failed to enqueue operation: %w", err)
	}

	s.logger.Debug("enqueued operation",
		"op_id", id,
		"kind", op.Kind,
		"entity_type", op.EntityType,
		"local_id", op.EntityRef.LocalID)

	return nil
}

// Snapshot returns detached copies of all live operations in enqueue
// order. Callers mutate them freely during a drain pass; only the Mark
// methods persist anything.
func (s *service) Snapshot(ctx context.Context) ([]*models.QueuedOperation, error) {
	ops, err := s.store.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot queue: %w", err)
	}

	live := make([]*models.QueuedOperation, 0, len(ops))
	for _, op := range ops {
		if !op.Exhausted {
			live = append(live, op.Clone())
		}
	}
	return live, nil
}

// MarkInFlight records that an operation is being sent
func (s *service) MarkInFlight(ctx context.Context, op *models.QueuedOperation) error {
	op.Status = models.StatusInFlight
	if err := s.store.UpdateOperation(ctx, op); err != nil {
		return fmt.Errorf("failed to mark operation in flight: %w", err)
	}
	return nil
}

// MarkDone prunes an acknowledged operation
func (s *service) MarkDone(ctx context.Context, op *models.QueuedOperation) error {
	op.Status = models.StatusDone
	if err := s.store.DeleteOperation(ctx, op.ID); err != nil {
		return fmt.Errorf("failed to prune operation: %w", err)
	}
	return nil
}

// MarkFailed records a transient failure and schedules the retry
func (s *service) MarkFailed(ctx context.Context, op *models.QueuedOperation, cause error, now time.Time) (bool, error) {
	op.RetryCount++
	op.Status = models.StatusFailed
	op.LastError = cause.Error()

	if op.RetryCount >= s.cfg.MaxRetries {
		op.Exhausted = true
		op.NextRetryAt = time.Time{}
		if err := s.store.UpdateOperation(ctx, op); err != nil {
			return false, fmt.Errorf("failed to mark operation exhausted: %w", err)
		}
		s.logger.Warn("operation exhausted retry budget",
			"op_id", op.ID,
			"entity_type", op.EntityType,
			"retries", op.RetryCount,
			"last_error", op.LastError)
		return true, nil
	}

	op.NextRetryAt = now.Add(s.backoffDelay(op.RetryCount))
	if err := s.store.UpdateOperation(ctx, op); err != nil {
		return false, fmt.Errorf("failed to schedule retry: %w", err)
	}

	s.logger.Debug("scheduled retry",
		"op_id", op.ID,
		"retry", op.RetryCount,
		"next_retry_at", op.NextRetryAt)

	return false, nil
}

// MarkRejected terminally fails an operation the server refused
func (s *service) MarkRejected(ctx context.Context, op *models.QueuedOperation, cause error) error {
	op.Status = models.StatusFailed
	op.Exhausted = true
	op.LastError = cause.Error()
	op.NextRetryAt = time.Time{}

	if err := s.store.UpdateOperation(ctx, op); err != nil {
		return fmt.Errorf("failed to mark operation rejected: %w", err)
	}

	s.logger.Warn("operation rejected by server",
		"op_id", op.ID,
		"entity_type", op.EntityType,
		"error", op.LastError)

	return nil
}

// MarkInterrupted returns an in-flight operation to FAILED with an
// immediate retry
func (s *service) MarkInterrupted(ctx context.Context, op *models.QueuedOperation) error {
	op.Status = models.StatusFailed
	op.NextRetryAt = time.Time{}
	op.LastError = "drain pass interrupted"

	if err := s.store.UpdateOperation(ctx, op); err != nil {
		return fmt.Errorf("failed to mark operation interrupted: %w", err)
	}
	return nil
}

// PropagateConfirm rewrites a confirmed operation's server id and
// version onto the operations still queued behind it
func (s *service) PropagateConfirm(ctx context.Context, localID, serverID string, serverVersion int64) error {
	if err := s.store.RewriteEntityRef(ctx, localID, serverID, serverVersion); err != nil {
		return fmt.Errorf("failed to rewrite entity ref: %w", err)
	}
	return nil
}

// PendingCount returns the number of operations awaiting sync
func (s *service) PendingCount(ctx context.Context) (int, error) {
	return s.store.CountPending(ctx)
}

// ListExhausted returns operations needing operator attention
func (s *service) ListExhausted(ctx context.Context) ([]*models.QueuedOperation, error) {
	ops, err := s.store.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	var exhausted []*models.QueuedOperation
	for _, op := range ops {
		if op.Exhausted {
			exhausted = append(exhausted, op)
		}
	}
	return exhausted, nil
}

// RecoverInFlight resolves operations left IN_FLIGHT by a crash
func (s *service) RecoverInFlight(ctx context.Context) (int, error) {
	recovered, err := s.store.RecoverInFlight(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to recover in-flight operations: %w", err)
	}
	if recovered > 0 {
		s.logger.Info("recovered in-flight operations", "count", recovered)
	}
	return recovered, nil
}

// backoffDelay computes the delay for the given attempt: exponential
// from BaseDelay, capped at MaxDelay, jittered. A zero JitterPercent
// must skip the jitter wrapper, which rejects it.
func (s *service) backoffDelay(attempt int) time.Duration {
	backoff := retry.WithCappedDuration(s.cfg.MaxDelay, retry.NewExponential(s.cfg.BaseDelay))
	if s.cfg.JitterPercent > 0 {
		backoff = retry.WithJitterPercent(s.cfg.JitterPercent, backoff)
	}

	var delay time.Duration
	for i := 0; i < attempt; i++ {
		next, stop := backoff.Next()
		if stop {
			break
		}
		delay = next
	}
	return delay
}
