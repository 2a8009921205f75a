// Package conflict implements the durable registry of detected
// divergences. Records capture both snapshots at the moment of
// detection and stay around forever as the audit trail; resolution is
// always explicit.
package conflict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

// Registry errors
var (
	// ErrAlreadyResolved indicates the conflict record is immutable
	ErrAlreadyResolved = errors.New("conflict is already resolved")

	// ErrInvalidResolution indicates an unrecognized resolution outcome
	ErrInvalidResolution = errors.New("invalid conflict resolution")
)

// Service defines the conflict registry
type Service interface {
	// Record captures a divergence detected during drain: the queued
	// local payload on one side, the server's current record on the
	// other. The new record starts PENDING.
	Record(ctx context.Context, op *models.QueuedOperation, cause *models.ConflictError, now time.Time) (*models.ConflictRecord, error)

	// Resolve marks a pending record with its outcome. Records are
	// immutable afterwards; resolving twice fails with
	// ErrAlreadyResolved.
	Resolve(ctx context.Context, id string, resolution models.Resolution, resolvedBy string, now time.Time) (*models.ConflictRecord, error)

	// Get retrieves one record
	Get(ctx context.Context, id string) (*models.ConflictRecord, error)

	// Pending returns all records awaiting resolution
	Pending(ctx context.Context) ([]*models.ConflictRecord, error)

	// List returns every record, resolved or not
	List(ctx context.Context) ([]*models.ConflictRecord, error)
}

type service struct {
	store  storage.ConflictStorage
	logger *slog.Logger
}

// NewService creates a new conflict registry service
func NewService(store storage.ConflictStorage, logger *slog.Logger) Service {
	return &service{
		store:  store,
		logger: logger,
	}
}

// Record captures a divergence detected during drain
func (s *service) Record(ctx context.Context, op *models.QueuedOperation, cause *models.ConflictError, now time.Time) (*models.ConflictRecord, error) {
	entityID := op.EntityRef.ServerID
	if entityID == "" {
		entityID = op.EntityRef.LocalID
	}

	record := &models.ConflictRecord{
		ID:            uuid.New().String(),
		Timestamp:     now,
		EntityType:    op.EntityType,
		EntityID:      entityID,
		LocalData:     op.Payload,
		ServerData:    cause.ServerData,
		ServerVersion: cause.ServerVersion,
		OperationKind: op.Kind,
		Resolution:    models.ResolutionPending,
	}

	if err := s.store.SaveConflict(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save conflict record: %w", err)
	}

	s.logger.Warn("recorded sync conflict",
		"conflict_id", record.ID,
		"entity_type", record.EntityType,
		"entity_id", record.EntityID,
		"server_version", record.ServerVersion)

	return record, nil
}

// Resolve marks a pending record with its outcome
func (s *service) Resolve(ctx context.Context, id string, resolution models.Resolution, resolvedBy string, now time.Time) (*models.ConflictRecord, error) {
	if !resolution.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResolution, resolution)
	}

	record, err := s.store.GetConflict(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get conflict: %w", err)
	}

	if record.Resolution != models.ResolutionPending {
		return nil, fmt.Errorf("%w: %s resolved as %s", ErrAlreadyResolved, id, record.Resolution)
	}

	record.Resolution = resolution
	record.ResolvedBy = resolvedBy
	record.ResolvedAt = now

	if err := s.store.SaveConflict(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save resolution: %w", err)
	}

	s.logger.Info("resolved conflict",
		"conflict_id", record.ID,
		"resolution", resolution,
		"resolved_by", resolvedBy)

	return record, nil
}

// Get retrieves one record
func (s *service) Get(ctx context.Context, id string) (*models.ConflictRecord, error) {
	return s.store.GetConflict(ctx, id)
}

// Pending returns all records awaiting resolution
func (s *service) Pending(ctx context.Context) ([]*models.ConflictRecord, error) {
	return s.store.PendingConflicts(ctx)
}

// List returns every record, resolved or not
func (s *service) List(ctx context.Context) ([]*models.ConflictRecord, error) {
	return s.store.ListConflicts(ctx)
}
