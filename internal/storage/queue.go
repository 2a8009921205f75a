package storage

import (
	"context"

	"github.com/clinicore/syncengine/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines the durable mutation log. Operation ids are
// monotonic and locally unique; iteration order is enqueue order.
type QueueStorage interface {
	// ApplyMutation atomically writes the optimistic entity snapshot,
	// appends the queued operation (assigning its monotonic id), and
	// drops cached entries of the entity's kind. Either all three
	// succeed or none do. Returns ErrQueueFull when the queue depth
	// limit is reached.
	ApplyMutation(ctx context.Context, record *models.EntityRecord, op *models.QueuedOperation) (uint64, error)

	// GetOperation retrieves one operation by id
	// Returns ErrOperationNotFound if it does not exist
	GetOperation(ctx context.Context, id uint64) (*models.QueuedOperation, error)

	// ListOperations returns all live operations in enqueue order
	ListOperations(ctx context.Context) ([]*models.QueuedOperation, error)

	// UpdateOperation overwrites an existing operation's record
	UpdateOperation(ctx context.Context, op *models.QueuedOperation) error

	// DeleteOperation prunes an acknowledged operation
	DeleteOperation(ctx context.Context, id uint64) error

	// RewriteEntityRef propagates a confirmed operation's server
	// identity and version onto every operation still queued for the
	// same entity: an empty EntityRef.ServerID is filled in, and
	// BaseVersion is set so the next sibling passes the server's
	// version check. Called after every acknowledged write.
	RewriteEntityRef(ctx context.Context, localID, serverID string, baseVersion int64) error

	// CountPending returns the number of operations awaiting sync,
	// excluding exhausted ones
	CountPending(ctx context.Context) (int, error)

	// RecoverInFlight marks any IN_FLIGHT operation as FAILED with an
	// immediate retry. Called at startup: no operation may stay in an
	// ambiguous state across a scheduler restart.
	RecoverInFlight(ctx context.Context) (int, error)
}
