package domain

import (
	"time"
)

// Task is the single resource managed by the API: a numbered title.
// ID is assigned by storage on creation and never changes afterwards.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTask builds an unsaved Task with the given title and fresh timestamps.
// The ID stays zero until a store assigns one.
func NewTask(title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task invariant: the title must not be empty.
// Whitespace-only titles are accepted.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	return nil
}

// Rename replaces the title and bumps UpdatedAt. The task is left untouched
// when the new title is invalid.
func (t *Task) Rename(title string) error {
	if title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	t.Title = title
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// ValidateID reports whether id could have been assigned by storage.
func ValidateID(id int64) error {
	if id <= 0 {
		return NewValidationError("id", "must be a positive integer", ErrInvalidID)
	}
	return nil
}
