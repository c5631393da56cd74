package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/domain"
)

// V1TaskStore persists the unauthenticated, single-tenant task list. It has
// none of the hardening of TaskStore: no owner scoping, no version counter,
// and deletes are physical. It exists as the contrast baseline for the
// authenticated task subsystem.
type V1TaskStore interface {
	Create(ctx context.Context, task *domain.V1Task) error
	List(ctx context.Context) ([]*domain.V1Task, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.V1Task, error)
	Update(ctx context.Context, task *domain.V1Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}
