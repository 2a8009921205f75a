package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/syncengine/internal/server/storage"
	"github.com/clinicore/syncengine/pkg/api"
)

// CreateEntity inserts a new entity, deduplicating by idempotency token
func (s *Storage) CreateEntity(ctx context.Context, entityType string, req api.WriteRequest) (*api.EntityRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if record, replayed, err := s.replayWrite(ctx, tx, req.IdempotencyToken); err != nil {
		return nil, err
	} else if replayed {
		return record, nil
	}

	now := time.Now().UTC()
	record := &api.EntityRecord{
		ID:        uuid.New().String(),
		Data:      req.Data,
		Version:   1,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO entities (id, entity_type, data, version, deleted, updated_at)
		VALUES (?, ?, ?, 1, 0, ?)
	`
	if _, err := tx.ExecContext(ctx, query, record.ID, entityType, string(req.Data), now.Unix()); err != nil {
		return nil, fmt.Errorf("failed to insert entity: %w", err)
	}

	if err := s.rememberWrite(ctx, tx, req.IdempotencyToken, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return record, nil
}

// UpdateEntity applies new data after a version check
func (s *Storage) UpdateEntity(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error) {
	return s.versionedWrite(ctx, entityType, id, req, false)
}

// DeleteEntity soft-deletes after the same version check
func (s *Storage) DeleteEntity(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error) {
	return s.versionedWrite(ctx, entityType, id, req, true)
}

// versionedWrite is the shared update/delete path: replay by token,
// check the base version, bump, remember the response
func (s *Storage) versionedWrite(ctx context.Context, entityType, id string, req api.WriteRequest, deleted bool) (*api.EntityRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if record, replayed, err := s.replayWrite(ctx, tx, req.IdempotencyToken); err != nil {
		return nil, err
	} else if replayed {
		return record, nil
	}

	current, err := getEntityTx(ctx, tx, entityType, id)
	if err != nil {
		return nil, err
	}

	if current.Version != req.BaseVersion {
		return nil, &storage.VersionConflictError{Current: *current}
	}

	now := time.Now().UTC()
	record := &api.EntityRecord{
		ID:        current.ID,
		Data:      current.Data,
		Version:   current.Version + 1,
		Deleted:   deleted,
		UpdatedAt: now,
	}
	if !deleted {
		record.Data = req.Data
	}

	query := `
		UPDATE entities
		SET data = ?, version = ?, deleted = ?, updated_at = ?
		WHERE id = ? AND entity_type = ?
	`
	if _, err := tx.ExecContext(ctx, query,
		string(record.Data), record.Version, boolToInt(deleted), now.Unix(), id, entityType); err != nil {
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}

	if err := s.rememberWrite(ctx, tx, req.IdempotencyToken, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return record, nil
}

// GetEntity returns the current record, deleted or not
func (s *Storage) GetEntity(ctx context.Context, entityType, id string) (*api.EntityRecord, error) {
	return getEntityTx(ctx, s.db, entityType, id)
}

// ListEntities returns all non-deleted records of a type
func (s *Storage) ListEntities(ctx context.Context, entityType string) ([]api.EntityRecord, error) {
	query := `
		SELECT id, data, version, deleted, updated_at
		FROM entities
		WHERE entity_type = ? AND deleted = 0
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []api.EntityRecord
	for rows.Next() {
		record, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}
	return records, nil
}

// queryRower is satisfied by *sql.DB and *sql.Tx
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func getEntityTx(ctx context.Context, q queryRower, entityType, id string) (*api.EntityRecord, error) {
	query := `
		SELECT id, data, version, deleted, updated_at
		FROM entities
		WHERE id = ? AND entity_type = ?
	`
	record, err := scanEntity(q.QueryRowContext(ctx, query, id, entityType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, err
	}
	return record, nil
}

func scanEntity(row rowScanner) (*api.EntityRecord, error) {
	var record api.EntityRecord
	var data string
	var deleted int
	var updatedAt int64

	if err := row.Scan(&record.ID, &data, &record.Version, &deleted, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan entity: %w", err)
	}

	record.Data = json.RawMessage(data)
	record.Deleted = deleted != 0
	record.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &record, nil
}

// replayWrite returns the stored response for a token already seen
func (s *Storage) replayWrite(ctx context.Context, tx *sql.Tx, token string) (*api.EntityRecord, bool, error) {
	var response string
	err := tx.QueryRowContext(ctx, `SELECT response FROM idempotency WHERE token = ?`, token).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to check idempotency token: %w", err)
	}

	record := &api.EntityRecord{}
	if err := json.Unmarshal([]byte(response), record); err != nil {
		return nil, false, fmt.Errorf("failed to decode stored response: %w", err)
	}
	return record, true, nil
}

// rememberWrite stores the response for future replays of the token
func (s *Storage) rememberWrite(ctx context.Context, tx *sql.Tx, token string, record *api.EntityRecord) error {
	response, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	query := `INSERT INTO idempotency (token, response, created_at) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, token, string(response), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to store idempotency token: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
