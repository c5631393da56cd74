package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every read and
// mutation is scoped to an owner; a task belonging to another user is
// reported exactly like a missing one (ErrTaskNotFound). Soft-deleted rows
// are invisible to all methods except the soft-delete mutations themselves.
type TaskStore interface {
	// Create inserts a new task with version 1.
	Create(ctx context.Context, task *domain.Task) error

	// ListByOwner returns all non-deleted tasks owned by userID in
	// insertion order.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetForOwner retrieves the non-deleted task with the given id owned
	// by userID. Returns ErrTaskNotFound if the task does not exist, is
	// soft-deleted, or belongs to a different user.
	GetForOwner(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// UpdateVersioned performs the optimistic-concurrency update: in a
	// single conditional statement it locates the row matching (id, owner,
	// expectedVersion, not deleted), sets title and description, and bumps
	// the version by one. The returned task reflects the new state.
	// Returns ErrTaskNotFound when no row matches, which covers missing,
	// soft-deleted, foreign, and stale-version tasks alike. The find and
	// mutate must happen as one atomic storage operation; racing updates
	// with the same expected version produce exactly one winner.
	UpdateVersioned(
		ctx context.Context,
		userID, id uuid.UUID,
		expectedVersion int64,
		title string,
		description *string,
	) (*domain.Task, error)

	// SoftDelete marks the task deleted. Returns ErrTaskNotFound if no
	// matching live task exists.
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error

	// SoftDeleteByOwner marks every live task owned by userID deleted.
	SoftDeleteByOwner(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
