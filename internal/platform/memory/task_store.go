package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskStore implements store.TaskStore on top of a map guarded by a RWMutex.
// IDs start at 1 and are never reused, matching an auto-increment column.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	nextID int64
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		task := t
		tasks = append(tasks, &task)
	}
	s.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	t, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task not found", slog.Int64("task_id", id))
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(title)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	task.ID = s.nextID
	s.nextID++
	s.tasks[task.ID] = *task
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, id int64, title string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	if err := t.Rename(title); err != nil {
		return nil, err
	}
	s.tasks[id] = t

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated", slog.Int64("task_id", id))
	return &t, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	_, existed := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.Int64("task_id", id),
		slog.Bool("existed", existed))
	return nil
}
