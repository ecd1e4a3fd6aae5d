package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// SQLiteTaskStore implements the store.TaskStore interface
// using a SQLite database as the storage backend.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure SQLiteTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// NewSQLiteTaskStore creates a new SQLite implementation of the TaskStore interface.
// The tasks table must already exist (see package migrations).
// If logger is nil, a default logger will be used.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

const taskColumns = `id, title, created_at, updated_at`

func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		timestamp{t: &task.CreatedAt},
		timestamp{t: &task.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List implements store.TaskStore.List.
func (s *SQLiteTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "query failed", MapError(err))
	}

	return task, nil
}

// Create implements store.TaskStore.Create.
func (s *SQLiteTaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title)
	if err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (title, created_at, updated_at) VALUES (?, ?, ?) RETURNING `+taskColumns,
		task.Title,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	created, err := scanTask(row)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Info("task created successfully", slog.Int64("task_id", created.ID))
	return created, nil
}

// Update implements store.TaskStore.Update.
func (s *SQLiteTaskStore) Update(ctx context.Context, id int64, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := domain.Task{ID: id, Title: title}
	if err := probe.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`UPDATE tasks SET title = ?, updated_at = ? WHERE id = ? RETURNING `+taskColumns,
		title,
		formatTime(time.Now()),
		id,
	)
	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	log.Info("task updated successfully", slog.Int64("task_id", id))
	return updated, nil
}

// Delete implements store.TaskStore.Delete.
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	affected, _ := result.RowsAffected()
	log.Info("task delete executed",
		slog.Int64("task_id", id),
		slog.Int64("rows_affected", affected))
	return nil
}
