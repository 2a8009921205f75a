package storage

import (
	"errors"
	"fmt"

	"github.com/clinicore/syncengine/pkg/api"
)

// Common storage errors
var (
	// ErrEntityNotFound indicates the entity does not exist
	ErrEntityNotFound = errors.New("entity not found")
)

// VersionConflictError indicates a version-checked write arrived with a
// stale base version. It carries the current record so the handler can
// return it to the client for conflict capture.
type VersionConflictError struct {
	Current api.EntityRecord
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on %s: current version is %d", e.Current.ID, e.Current.Version)
}
