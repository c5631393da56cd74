package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner     = errors.New("task owner cannot be empty")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title must be at most 255 characters long")
	ErrDescriptionTooLong = errors.New("description must be at most 1000 characters long")
	ErrInvalidVersion     = errors.New("version must be a positive integer")
)

// Task title and description bounds.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

// Task is a to-do item owned by exactly one user. Version is an optimistic
// concurrency counter: it starts at 1 and increases by exactly 1 on every
// successful update. A non-nil DeletedAt marks the task soft-deleted;
// soft-deleted tasks are excluded from all reads and version matching.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// NewTask creates a task owned by userID with version 1.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string, description *string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}
	if err := ValidateTaskFields(t.Title, t.Description); err != nil {
		return err
	}
	if t.Version < 1 {
		return ErrInvalidVersion
	}
	return nil
}

// ValidateTaskFields checks the user-supplied title and description against
// the domain bounds. It is shared by create and update paths so the rules
// cannot drift apart. The bounds count characters, not bytes, so multibyte
// titles are measured the same way the request validator measures them.
func ValidateTaskFields(title string, description *string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// IsDeleted reports whether the task has been soft-deleted.
func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}
