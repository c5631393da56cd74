package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// V1TaskStore implements store.V1TaskStore for the unauthenticated
// baseline list. Deletes are physical and there is no owner or version
// column to match on.
type V1TaskStore struct {
	db store.DBTX
}

// NewV1TaskStore creates the PostgreSQL implementation of the baseline
// task store.
func NewV1TaskStore(db store.DBTX) *V1TaskStore {
	return &V1TaskStore{db: db}
}

var _ store.V1TaskStore = (*V1TaskStore)(nil)

func (s *V1TaskStore) Create(ctx context.Context, task *domain.V1Task) error {
	const query = `
		INSERT INTO v1_tasks (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create v1 task: %w", MapError(err))
	}
	return nil
}

func (s *V1TaskStore) List(ctx context.Context) ([]*domain.V1Task, error) {
	const query = `
		SELECT id, title, description, created_at, updated_at
		FROM v1_tasks ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list v1 tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.V1Task, 0)
	for rows.Next() {
		var task domain.V1Task
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan v1 task row: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate v1 task rows: %w", err)
	}

	return tasks, nil
}

func (s *V1TaskStore) Get(ctx context.Context, id uuid.UUID) (*domain.V1Task, error) {
	const query = `
		SELECT id, title, description, created_at, updated_at
		FROM v1_tasks WHERE id = $1
	`

	var task domain.V1Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get v1 task: %w", MapError(err))
	}

	return &task, nil
}

func (s *V1TaskStore) Update(ctx context.Context, task *domain.V1Task) error {
	const query = `
		UPDATE v1_tasks
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, task.Title, task.Description, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update v1 task: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

func (s *V1TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM v1_tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete v1 task: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

func (s *V1TaskStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM v1_tasks`); err != nil {
		return fmt.Errorf("failed to delete v1 tasks: %w", MapError(err))
	}
	return nil
}
