// Package engine exposes the facade application code calls: local-first
// reads and writes plus explicit conflict resolution. Reads consult the
// cache and degrade to stale local data offline; writes apply
// optimistically to the local store and are queued for the scheduler to
// reconcile.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/syncengine/internal/cache"
	"github.com/clinicore/syncengine/internal/clock"
	"github.com/clinicore/syncengine/internal/conflict"
	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/queue"
	"github.com/clinicore/syncengine/internal/storage"
)

//go:generate moq -out engine_mock.go . Service

// DefaultTTL is used when a call site does not request one.
const DefaultTTL = 5 * time.Minute

// GetOptions tunes one read.
type GetOptions struct {
	// TTL bounds how long the fetched value stays fresh
	TTL time.Duration
	// Transform, when set, maps the raw fetched/cached bytes before
	// they are returned
	Transform func([]byte) ([]byte, error)
}

// GetResult is a facade read outcome.
type GetResult struct {
	StoredAt time.Time
	Value    []byte
	Stale    bool
}

// Service is the engine facade
type Service interface {
	// Get returns the cached value for (kind, key), refreshing via
	// fetch when stale. Offline it degrades to the last stored value,
	// marked stale, or fails wrapping models.ErrNotAvailableOffline.
	Get(ctx context.Context, kind, key string, opts GetOptions, fetch cache.Fetcher) (*GetResult, error)

	// Mutate applies the payload to the local store and queues the
	// remote write. It returns the locally applied record immediately
	// and never fails for lack of a network: only storage exhaustion
	// or payload validation can reject it.
	Mutate(ctx context.Context, kind models.OpKind, entityType string, payload json.RawMessage, entityID string) (*models.EntityRecord, error)

	// ResolveConflict settles a pending conflict record. LOCAL_WINS
	// and MERGED enqueue a corrective write; SERVER_WINS applies the
	// server's record locally and discards the local change.
	ResolveConflict(ctx context.Context, conflictID string, resolution models.Resolution, merged json.RawMessage, resolvedBy string) error

	// Entity reads the local snapshot of one entity by local or
	// server id
	Entity(ctx context.Context, entityType, id string) (*models.EntityRecord, error)

	// Entities lists the local non-deleted snapshots of a type
	Entities(ctx context.Context, entityType string) ([]*models.EntityRecord, error)

	// PendingCount reports the queue depth awaiting sync
	PendingCount(ctx context.Context) (int, error)

	// ExhaustedOperations lists writes needing operator attention
	ExhaustedOperations(ctx context.Context) ([]*models.QueuedOperation, error)

	// PendingConflicts lists conflicts awaiting resolution
	PendingConflicts(ctx context.Context) ([]*models.ConflictRecord, error)

	// LastSyncAt reports when an entity kind last drained successfully
	LastSyncAt(ctx context.Context, entityType string) (time.Time, error)
}

type service struct {
	cache     cache.Service
	queue     queue.Service
	conflicts conflict.Service
	entities  storage.EntityStorage
	meta      storage.MetadataStorage
	clk       clock.Clock
	logger    *slog.Logger
}

// NewService creates the engine facade
func NewService(
	cacheSvc cache.Service,
	q queue.Service,
	conflicts conflict.Service,
	entities storage.EntityStorage,
	meta storage.MetadataStorage,
	clk clock.Clock,
	logger *slog.Logger,
) Service {
	return &service{
		cache:     cacheSvc,
		queue:     q,
		conflicts: conflicts,
		entities:  entities,
		meta:      meta,
		clk:       clk,
		logger:    logger,
	}
}

// Get implements the read path
func (s *service) Get(ctx context.Context, kind, key string, opts GetOptions, fetch cache.Fetcher) (*GetResult, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	result, err := s.cache.Get(ctx, kind, key, ttl, fetch)
	if err != nil {
		return nil, err
	}

	value := result.Value
	if opts.Transform != nil {
		value, err = opts.Transform(value)
		if err != nil {
			return nil, fmt.Errorf("transform failed for %s/%s: %w", kind, key, err)
		}
	}

	return &GetResult{Value: value, Stale: result.Stale, StoredAt: result.StoredAt}, nil
}

// Mutate implements the write path: optimistic apply plus durable
// enqueue, atomically, before any network attempt
func (s *service) Mutate(ctx context.Context, kind models.OpKind, entityType string, payload json.RawMessage, entityID string) (*models.EntityRecord, error) {
	if entityType == "" {
		return nil, &models.ValidationError{Message: "entity type is required"}
	}

	now := s.clk.Now()
	var record *models.EntityRecord
	var baseVersion int64

	switch kind {
	case models.OpCreate:
		if !json.Valid(payload) {
			return nil, &models.ValidationError{Message: "payload is not valid JSON"}
		}
		record = &models.EntityRecord{
			LocalID:    models.LocalIDPrefix + uuid.New().String(),
			EntityType: entityType,
			Data:       payload,
			Pending:    true,
			UpdatedAt:  now,
		}

	case models.OpUpdate, models.OpDelete:
		if entityID == "" {
			return nil, &models.ValidationError{Message: "entity id is required for " + string(kind)}
		}
		if kind == models.OpUpdate && !json.Valid(payload) {
			return nil, &models.ValidationError{Message: "payload is not valid JSON"}
		}

		existing, err := s.entities.GetEntity(ctx, entityType, entityID)
		if err != nil {
			if errors.Is(err, storage.ErrEntityNotFound) {
				return nil, fmt.Errorf("cannot %s unknown entity %s/%s: %w", kind, entityType, entityID, err)
			}
			return nil, fmt.Errorf("failed to load entity: %w", err)
		}

		baseVersion = existing.Version
		record = existing
		record.Pending = true
		record.UpdatedAt = now
		if kind == models.OpUpdate {
			record.Data = payload
		} else {
			record.Deleted = true
		}

	default:
		return nil, &models.ValidationError{Message: "unknown operation kind: " + string(kind)}
	}

	op := &models.QueuedOperation{
		Timestamp:        now,
		Kind:             kind,
		EntityType:       entityType,
		Status:           models.StatusPending,
		IdempotencyToken: uuid.New().String(),
		EntityRef: models.EntityRef{
			LocalID:  record.LocalID,
			ServerID: record.ServerID,
		},
		Payload:     payload,
		BaseVersion: baseVersion,
	}

	if err := s.queue.Enqueue(ctx, record, op); err != nil {
		return nil, err
	}

	s.logger.Debug("mutation applied locally",
		"kind", kind,
		"entity_type", entityType,
		"local_id", record.LocalID)

	return record, nil
}

// ResolveConflict settles a pending conflict record
func (s *service) ResolveConflict(ctx context.Context, conflictID string, resolution models.Resolution, merged json.RawMessage, resolvedBy string) error {
	record, err := s.conflicts.Get(ctx, conflictID)
	if err != nil {
		return fmt.Errorf("failed to load conflict: %w", err)
	}
	if record.Resolution != models.ResolutionPending {
		return fmt.Errorf("%w: %s", conflict.ErrAlreadyResolved, conflictID)
	}

	switch resolution {
	case models.ResolutionServerWins:
		if err := s.applyServerRecord(ctx, record); err != nil {
			return err
		}

	case models.ResolutionLocalWins:
		if err := s.enqueueCorrective(ctx, record, record.LocalData); err != nil {
			return err
		}

	case models.ResolutionMerged:
		if record.OperationKind == models.OpDelete {
			return &models.ValidationError{Message: "cannot merge a DELETE conflict"}
		}
		if !json.Valid(merged) {
			return &models.ValidationError{Message: "merged payload is not valid JSON"}
		}
		if err := s.enqueueCorrective(ctx, record, merged); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: %q", conflict.ErrInvalidResolution, resolution)
	}

	if _, err := s.conflicts.Resolve(ctx, conflictID, resolution, resolvedBy, s.clk.Now()); err != nil {
		return err
	}
	return nil
}

// applyServerRecord discards the local change in favor of the server's
// copy captured in the conflict record
func (s *service) applyServerRecord(ctx context.Context, record *models.ConflictRecord) error {
	snapshot, err := s.entities.GetEntity(ctx, record.EntityType, record.EntityID)
	if err != nil {
		if !errors.Is(err, storage.ErrEntityNotFound) {
			return fmt.Errorf("failed to load entity: %w", err)
		}
		snapshot = &models.EntityRecord{
			LocalID:    record.EntityID,
			ServerID:   record.EntityID,
			EntityType: record.EntityType,
		}
	}

	snapshot.Data = record.ServerData
	snapshot.Version = record.ServerVersion
	snapshot.Deleted = record.ServerDeleted
	snapshot.Pending = false
	snapshot.UpdatedAt = s.clk.Now()

	if err := s.entities.SaveEntity(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to apply server record: %w", err)
	}
	return s.cache.Invalidate(ctx, record.EntityType)
}

// enqueueCorrective queues a new write carrying the chosen payload,
// based on the server version captured at detection so it will not
// conflict against that same version again
func (s *service) enqueueCorrective(ctx context.Context, record *models.ConflictRecord, payload json.RawMessage) error {
	snapshot, err := s.entities.GetEntity(ctx, record.EntityType, record.EntityID)
	if err != nil {
		if !errors.Is(err, storage.ErrEntityNotFound) {
			return fmt.Errorf("failed to load entity: %w", err)
		}
		snapshot = &models.EntityRecord{
			LocalID:    record.EntityID,
			ServerID:   record.EntityID,
			EntityType: record.EntityType,
		}
	}

	now := s.clk.Now()
	kind := models.OpUpdate
	if record.OperationKind == models.OpDelete {
		kind = models.OpDelete
		snapshot.Deleted = true
	} else {
		snapshot.Data = payload
	}
	snapshot.Pending = true
	snapshot.UpdatedAt = now

	op := &models.QueuedOperation{
		Timestamp:        now,
		Kind:             kind,
		EntityType:       record.EntityType,
		Status:           models.StatusPending,
		IdempotencyToken: uuid.New().String(),
		EntityRef: models.EntityRef{
			LocalID:  snapshot.LocalID,
			ServerID: snapshot.ServerID,
		},
		Payload:     payload,
		BaseVersion: record.ServerVersion,
	}

	return s.queue.Enqueue(ctx, snapshot, op)
}

// Entity reads the local snapshot of one entity
func (s *service) Entity(ctx context.Context, entityType, id string) (*models.EntityRecord, error) {
	return s.entities.GetEntity(ctx, entityType, id)
}

// Entities lists the local non-deleted snapshots of a type
func (s *service) Entities(ctx context.Context, entityType string) ([]*models.EntityRecord, error) {
	return s.entities.ListEntities(ctx, entityType)
}

// PendingCount reports the queue depth awaiting sync
func (s *service) PendingCount(ctx context.Context) (int, error) {
	return s.queue.PendingCount(ctx)
}

// ExhaustedOperations lists writes needing operator attention
func (s *service) ExhaustedOperations(ctx context.Context) ([]*models.QueuedOperation, error) {
	return s.queue.ListExhausted(ctx)
}

// PendingConflicts lists conflicts awaiting resolution
func (s *service) PendingConflicts(ctx context.Context) ([]*models.ConflictRecord, error) {
	return s.conflicts.Pending(ctx)
}

// LastSyncAt reports when an entity kind last drained successfully
func (s *service) LastSyncAt(ctx context.Context, entityType string) (time.Time, error) {
	return s.meta.GetLastSyncAt(ctx, entityType)
}
