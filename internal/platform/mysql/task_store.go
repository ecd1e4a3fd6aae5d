package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MySQLTaskStore implements the store.TaskStore interface
// using a MySQL database as the storage backend.
type MySQLTaskStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Ensure MySQLTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MySQLTaskStore)(nil)

// taskRow is the sqlx mapping of a tasks table row.
type taskRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r taskRow) toDomain() *domain.Task {
	return &domain.Task{
		ID:        r.ID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// NewMySQLTaskStore creates a new MySQL implementation of the TaskStore interface.
// db must have been opened with Open so DATETIME columns decode into time.Time.
// If logger is nil, a default logger will be used.
func NewMySQLTaskStore(db *sql.DB, logger *slog.Logger) *MySQLTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MySQLTaskStore{
		db:     sqlx.NewDb(db, DriverName),
		logger: logger.With(slog.String("component", "mysql_task_store")),
	}
}

const taskColumns = `id, title, created_at, updated_at`

// List implements store.TaskStore.List.
func (s *MySQLTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+taskColumns+` FROM tasks ORDER BY id`); err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *MySQLTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row taskRow
	err := s.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
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

	return row.toDomain(), nil
}

// Create implements store.TaskStore.Create.
// MySQL has no RETURNING, so the row is read back by its insert id.
func (s *MySQLTaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title)
	if err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, created_at, updated_at) VALUES (?, ?, ?)`,
		task.Title,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Error("failed to read insert id", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "insert id unavailable", err)
	}

	created, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("task created successfully", slog.Int64("task_id", id))
	return created, nil
}

// Update implements store.TaskStore.Update.
// The row is locked before the write because MySQL reports zero affected
// rows for an update that changes nothing, which is not the same as a miss.
func (s *MySQLTaskStore) Update(ctx context.Context, id int64, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := domain.Task{ID: id, Title: title}
	if err := probe.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	err := store.RunInTransaction(logger.WithLogger(ctx, log), s.db.DB, func(ctx context.Context, tx *sql.Tx) error {
		var locked int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM tasks WHERE id = ? FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE tasks SET title = ?, updated_at = ? WHERE id = ?`,
			title,
			time.Now().UTC(),
			id,
		)
		return err
	})
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

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("task updated successfully", slog.Int64("task_id", id))
	return updated, nil
}

// Delete implements store.TaskStore.Delete.
func (s *MySQLTaskStore) Delete(ctx context.Context, id int64) error {
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
