package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/platform/cache"
	"github.com/mtakagi/tasklist-api/internal/platform/logger"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// TaskService is the sole mutator of authenticated tasks. It enforces
// ownership scoping, the optimistic-concurrency update protocol, and the
// read-through cache around the TaskStore. Storage failures are logged
// here with correlating identifiers and surfaced as ErrInternal; raw
// storage detail never crosses this boundary.
type TaskService struct {
	db    *sql.DB
	tasks store.TaskStore
	cache *cache.TTLCache[*domain.Task]
}

// NewTaskService creates a TaskService. The cache must be dedicated to
// task entries; it is keyed by (task id, user id).
func NewTaskService(db *sql.DB, tasks store.TaskStore, taskCache *cache.TTLCache[*domain.Task]) *TaskService {
	return &TaskService{
		db:    db,
		tasks: tasks,
		cache: taskCache,
	}
}

// cacheKey builds the cache key for a (task, owner) pair.
func cacheKey(taskID, userID uuid.UUID) string {
	return fmt.Sprintf("task_%s_user_%s", taskID, userID)
}

// Create validates title and description and inserts the task with
// version 1 inside a storage transaction, so a partial write can never be
// observed.
func (s *TaskService) Create(
	ctx context.Context,
	user *domain.User,
	title string,
	description *string,
) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if err := domain.ValidateTaskFields(title, description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	task, err := domain.NewTask(user.ID, title, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task",
			"error", err,
			"user_id", user.ID,
			"title", title)
		return nil, ErrInternal
	}

	return task, nil
}

// List returns all non-deleted tasks owned by user, in insertion order.
func (s *TaskService) List(ctx context.Context, user *domain.User) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)

	tasks, err := s.tasks.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Error("failed to list tasks",
			"error", err,
			"user_id", user.ID)
		return nil, ErrInternal
	}

	return tasks, nil
}

// Get returns the task with the given id owned by user, consulting the
// read-through cache first. A missing, soft-deleted, or foreign task is
// uniformly store.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if task, ok := s.cache.Get(cacheKey(id, user.ID)); ok {
		return task, nil
	}

	task, err := s.tasks.GetForOwner(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			"error", err,
			"user_id", user.ID,
			"task_id", id)
		return nil, ErrInternal
	}

	s.cache.Set(cacheKey(id, user.ID), task)
	return task, nil
}

// Update performs the optimistic-concurrency update. Validation runs
// first; then the store executes a single conditional statement matching
// (id, owner, expectedVersion, not deleted) and bumping the version by
// one. A stale version, a foreign task, a soft-deleted task, and a
// missing task all surface as store.ErrTaskNotFound. On success the cache
// entry is refreshed.
func (s *TaskService) Update(
	ctx context.Context,
	user *domain.User,
	id uuid.UUID,
	title string,
	description *string,
	expectedVersion int64,
) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if err := domain.ValidateTaskFields(title, description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if expectedVersion < 1 {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, domain.ErrInvalidVersion)
	}

	var task *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		task, err = s.tasks.WithTx(tx).UpdateVersioned(
			ctx, user.ID, id, expectedVersion, title, description,
		)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			"error", err,
			"user_id", user.ID,
			"task_id", id)
		return nil, ErrInternal
	}

	s.cache.Set(cacheKey(id, user.ID), task)
	return task, nil
}

// Delete soft-deletes the task and invalidates its cache entry.
func (s *TaskService) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).SoftDelete(ctx, user.ID, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return store.ErrTaskNotFound
		}
		log.Error("failed to delete task",
			"error", err,
			"user_id", user.ID,
			"task_id", id)
		return ErrInternal
	}

	s.cache.Delete(cacheKey(id, user.ID))
	return nil
}

// DeleteAll soft-deletes every task owned by user. Cache entries are left
// to expire via their TTL; no scan is performed, so Get can keep serving a
// bulk-deleted task until its cache entry expires.
func (s *TaskService) DeleteAll(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := s.tasks.SoftDeleteByOwner(ctx, user.ID); err != nil {
		log.Error("failed to delete all tasks",
			"error", err,
			"user_id", user.ID)
		return ErrInternal
	}

	return nil
}
