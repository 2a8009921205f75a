// Package scheduler drives synchronization passes: a state machine per
// clinic profile that drains the mutation queue against the remote
// service on a timer and on connectivity events. DRAINING is exclusive;
// no two passes ever overlap.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/clinicore/syncengine/internal/cache"
	"github.com/clinicore/syncengine/internal/clock"
	"github.com/clinicore/syncengine/internal/config"
	"github.com/clinicore/syncengine/internal/conflict"
	"github.com/clinicore/syncengine/internal/connectivity"
	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/queue"
	"github.com/clinicore/syncengine/internal/remote"
	"github.com/clinicore/syncengine/internal/storage"
	"github.com/clinicore/syncengine/pkg/api"
)

// State is the scheduler's coarse activity state.
type State string

// Scheduler states
const (
	StateIdle     State = "IDLE"
	StateDraining State = "DRAINING"
)

// ErrDrainInProgress indicates a pass was requested while one is
// already running.
var ErrDrainInProgress = errors.New("drain pass already in progress")

// DrainResult summarizes one pass over the queue snapshot.
type DrainResult struct {
	Sent      int // operations attempted
	Confirmed int // acknowledged and pruned
	Conflicts int // diverted to the conflict registry
	Failed    int // transient failures, scheduled for retry
	Rejected  int // refused by the server, terminal
	Deferred  int // not ready, filtered out, or blocked behind a sibling
}

// Scheduler drains the mutation queue for one clinic profile.
type Scheduler struct {
	queue     queue.Service
	conflicts conflict.Service
	entities  storage.EntityStorage
	meta      storage.MetadataStorage
	cache     cache.Service
	client    remote.ClientAPI
	monitor   connectivity.Monitor
	clk       clock.Clock
	logger    *slog.Logger
	profile   config.Profile

	syncNow chan struct{}
	passes  atomic.Int64
	drain   atomic.Bool

	mu          sync.Mutex
	lastAttempt time.Time
}

// New creates a scheduler for the given clinic profile. The profile is
// explicit construction-time configuration so multiple profiles can be
// exercised in isolation.
func New(
	profile config.Profile,
	q queue.Service,
	conflicts conflict.Service,
	entities storage.EntityStorage,
	meta storage.MetadataStorage,
	cacheSvc cache.Service,
	client remote.ClientAPI,
	monitor connectivity.Monitor,
	clk clock.Clock,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		queue:     q,
		conflicts: conflicts,
		entities:  entities,
		meta:      meta,
		cache:     cacheSvc,
		client:    client,
		monitor:   monitor,
		clk:       clk,
		logger:    logger,
		profile:   profile,
		syncNow:   make(chan struct{}, 1),
	}
}

// State reports whether a pass is running.
func (s *Scheduler) State() State {
	if s.drain.Load() {
		return StateDraining
	}
	return StateIdle
}

// Passes returns the number of drain passes started since construction.
func (s *Scheduler) Passes() int64 {
	return s.passes.Load()
}

// SyncNow requests an immediate pass. Coalesces with any request
// already queued.
func (s *Scheduler) SyncNow() {
	select {
	case s.syncNow <- struct{}{}:
	default:
	}
}

// Run recovers crash leftovers and then loops until ctx is cancelled,
// draining on the profile interval, on connectivity-regained events,
// on manual requests, and on a pending queue once the grace period
// since the last attempt has elapsed.
func (s *Scheduler) Run(ctx context.Context) {
	if _, err := s.queue.RecoverInFlight(ctx); err != nil {
		s.logger.Error("failed to recover in-flight operations", "error", err)
	}

	interval := s.profile.Interval()
	grace := s.profile.GracePeriod()
	intervalCh := s.clk.After(interval)
	graceCh := s.clk.After(grace)

	s.logger.Info("scheduler started",
		"clinic_id", s.profile.ClinicID,
		"interval", interval,
		"grace_period", grace)

	for {
		select {
		case <-ctx.Done():
			return

		case <-intervalCh:
			s.runPass(ctx, "interval")
			intervalCh = s.clk.After(interval)

		case ev := <-s.monitor.Events():
			if ev.Online {
				s.runPass(ctx, "connectivity regained")
			}

		case <-s.syncNow:
			s.runPass(ctx, "manual")

		case <-graceCh:
			s.drainIfPending(ctx)
			graceCh = s.clk.After(grace)
		}
	}
}

// drainIfPending runs a pass when operations are waiting and the grace
// period since the last attempt has elapsed. This is what keeps a
// backlog moving without hammering a link that is still down.
func (s *Scheduler) drainIfPending(ctx context.Context) {
	pending, err := s.queue.PendingCount(ctx)
	if err != nil {
		s.logger.Error("failed to count pending operations", "error", err)
		return
	}
	if pending == 0 {
		return
	}

	s.mu.Lock()
	last := s.lastAttempt
	s.mu.Unlock()

	if !last.IsZero() && s.clk.Now().Sub(last) < s.profile.GracePeriod() {
		return
	}
	s.runPass(ctx, "queue pending")
}

func (s *Scheduler) runPass(ctx context.Context, reason string) {
	result, err := s.DrainOnce(ctx)
	if err != nil {
		if errors.Is(err, ErrDrainInProgress) {
			s.logger.Debug("skipping pass, drain in progress", "reason", reason)
			return
		}
		s.logger.Error("drain pass failed", "reason", reason, "error", err)
		return
	}

	s.logger.Info("drain pass completed",
		"reason", reason,
		"sent", result.Sent,
		"confirmed", result.Confirmed,
		"conflicts", result.Conflicts,
		"failed", result.Failed,
		"rejected", result.Rejected,
		"deferred", result.Deferred)
}

// DrainOnce processes the current queue snapshot once. Operations
// appended during the pass wait for the next one. Within an entity's
// sub-sequence operations go out in enqueue order; one failure blocks
// the rest of that entity's sequence for the pass.
func (s *Scheduler) DrainOnce(ctx context.Context) (*DrainResult, error) {
	if !s.drain.CompareAndSwap(false, true) {
		return nil, ErrDrainInProgress
	}
	defer s.drain.Store(false)

	s.passes.Add(1)
	s.mu.Lock()
	s.lastAttempt = s.clk.Now()
	s.mu.Unlock()

	snapshot, err := s.queue.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := &DrainResult{}
	blocked := make(map[string]bool)

	for _, op := range snapshot {
		if ctx.Err() != nil {
			break
		}

		entity := op.EntityRef.LocalID
		if blocked[entity] || !s.profile.Allows(op.EntityType) {
			result.Deferred++
			continue
		}
		if !op.Ready(s.clk.Now()) {
			blocked[entity] = true
			result.Deferred++
			continue
		}
		if op.Kind != models.OpCreate && op.EntityRef.ServerID == "" {
			// The entity's CREATE has not confirmed; its server id is
			// unknown
			blocked[entity] = true
			result.Deferred++
			continue
		}

		if err := s.queue.MarkInFlight(ctx, op); err != nil {
			return result, err
		}
		result.Sent++

		record, sendErr := s.send(ctx, op)
		if sendErr == nil {
			if err := s.confirm(ctx, op, record); err != nil {
				return result, err
			}
			// confirm rewrote the store; the snapshot copies of later
			// siblings still hold the base version captured at
			// enqueue time
			for _, sibling := range snapshot {
				if sibling.ID > op.ID && sibling.EntityRef.LocalID == entity {
					sibling.BaseVersion = record.Version
				}
			}
			result.Confirmed++
			continue
		}

		var conflictErr *models.ConflictError
		var validationErr *models.ValidationError

		switch {
		case errors.As(sendErr, &conflictErr):
			if _, err := s.conflicts.Record(ctx, op, conflictErr, s.clk.Now()); err != nil {
				return result, err
			}
			// The operation will not be silently reapplied; the
			// conflict record owns both snapshots now
			if err := s.queue.MarkDone(ctx, op); err != nil {
				return result, err
			}
			blocked[entity] = true
			result.Conflicts++

		case errors.As(sendErr, &validationErr):
			if err := s.queue.MarkRejected(ctx, op, sendErr); err != nil {
				return result, err
			}
			blocked[entity] = true
			result.Rejected++

		default:
			if ctx.Err() != nil {
				// Pass was cancelled mid-send; schedule an immediate
				// retry and stop
				if err := s.queue.MarkInterrupted(context.WithoutCancel(ctx), op); err != nil {
					return result, err
				}
				result.Failed++
				return result, nil
			}

			if _, err := s.queue.MarkFailed(ctx, op, sendErr, s.clk.Now()); err != nil {
				return result, err
			}
			blocked[entity] = true
			result.Failed++

			if !s.monitor.Online() {
				// The link is down; the rest of the snapshot would
				// only burn retry budget
				return result, nil
			}
		}
	}

	return result, nil
}

// send executes one operation's remote call
func (s *Scheduler) send(ctx context.Context, op *models.QueuedOperation) (*api.EntityRecord, error) {
	req := api.WriteRequest{
		IdempotencyToken: op.IdempotencyToken,
		Data:             op.Payload,
		BaseVersion:      op.BaseVersion,
	}

	switch op.Kind {
	case models.OpCreate:
		return s.client.Create(ctx, op.EntityType, req)
	case models.OpUpdate:
		return s.client.Update(ctx, op.EntityType, op.EntityRef.ServerID, req)
	case models.OpDelete:
		return s.client.Delete(ctx, op.EntityType, op.EntityRef.ServerID, req)
	default:
		return nil, &models.ValidationError{Message: "unknown operation kind: " + string(op.Kind)}
	}
}

// confirm reconciles an acknowledged operation: propagates the server
// identity and version onto queued siblings, prunes the operation,
// refreshes the local snapshot with the canonical record, and
// invalidates the kind's cache entries.
func (s *Scheduler) confirm(ctx context.Context, op *models.QueuedOperation, record *api.EntityRecord) error {
	// Siblings still queued were enqueued against an older version;
	// they must carry the one the server just assigned
	if err := s.queue.PropagateConfirm(ctx, op.EntityRef.LocalID, record.ID, record.Version); err != nil {
		return err
	}

	if err := s.queue.MarkDone(ctx, op); err != nil {
		return err
	}

	later, err := s.hasLaterOp(ctx, op)
	if err != nil {
		return err
	}

	snapshot, err := s.entities.GetEntity(ctx, op.EntityType, op.EntityRef.LocalID)
	if err != nil {
		if !errors.Is(err, storage.ErrEntityNotFound) {
			return err
		}
		snapshot = &models.EntityRecord{
			LocalID:    op.EntityRef.LocalID,
			EntityType: op.EntityType,
		}
	}

	// Identity and version always advance to the server's; local data
	// is only replaced when no later queued mutation still owns it
	snapshot.ServerID = record.ID
	snapshot.Version = record.Version
	snapshot.UpdatedAt = record.UpdatedAt
	if !later {
		snapshot.Data = record.Data
		snapshot.Pending = false
		snapshot.Deleted = op.Kind == models.OpDelete || record.Deleted
	}

	if err := s.entities.SaveEntity(ctx, snapshot); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, op.EntityType); err != nil {
		return err
	}
	if err := s.meta.SaveLastSyncAt(ctx, op.EntityType, s.clk.Now()); err != nil {
		return err
	}

	return nil
}

// hasLaterOp reports whether the live queue still holds a mutation for
// the operation's entity enqueued after it
func (s *Scheduler) hasLaterOp(ctx context.Context, op *models.QueuedOperation) (bool, error) {
	ops, err := s.queue.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	for _, other := range ops {
		if other.EntityRef.LocalID == op.EntityRef.LocalID && other.ID > op.ID {
			return true, nil
		}
	}
	return false, nil
}
