package domain

import (
	"time"

	"github.com/google/uuid"
)

// V1Task is the unauthenticated baseline task: no owner, no version
// counter, no soft delete. It shares the title/description bounds with
// Task but none of its invariants.
type V1Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewV1Task creates an unowned task for the single-tenant list.
func NewV1Task(title string, description *string) (*V1Task, error) {
	if err := ValidateTaskFields(title, description); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &V1Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
