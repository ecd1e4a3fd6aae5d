package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Implementations
// exist for an in-memory map and for SQLite, PostgreSQL and MySQL.
type TaskStore interface {
	// List returns every stored task ordered by ascending ID.
	// Returns an empty, non-nil slice when the store is empty.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if no task has that ID.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts a new task with the given title and returns it with the
	// storage-assigned ID and timestamps.
	// Returns a domain validation error if the title is empty.
	Create(ctx context.Context, title string) (*domain.Task, error)

	// Update overwrites the title of the task with the given ID and returns
	// its current state.
	// Returns ErrTaskNotFound if no task has that ID.
	Update(ctx context.Context, id int64, title string) (*domain.Task, error)

	// Delete removes the task with the given ID. Deleting a missing task is a no-op.
	Delete(ctx context.Context, id int64) error
}
