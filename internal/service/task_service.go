package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// It is aligned with store.TaskStore so every storage backend satisfies it.
type TaskRepository interface {
	List(ctx context.Context) ([]*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, title string) (*domain.Task, error)
	Update(ctx context.Context, id int64, title string) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

var _ TaskRepository = store.TaskStore(nil)

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns every task ordered by ID.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask returns the task with the given ID, or a 404 *TaskError.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask stores a new task, or returns a 400 *TaskError for an empty title.
	CreateTask(ctx context.Context, title string) (*domain.Task, error)

	// UpdateTask renames a task. An unknown ID is reported before an empty title.
	UpdateTask(ctx context.Context, id int64, title string) (*domain.Task, error)

	// DeleteTask removes a task, or returns a 404 *TaskError if it does not exist.
	DeleteTask(ctx context.Context, id int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo   TaskRepository
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if repo is nil.
func NewTaskService(repo TaskRepository, logger *slog.Logger) (TaskService, error) {
	if repo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "repo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Storage never assigns a non-positive ID.
	if err := domain.ValidateID(id); err != nil {
		log.Debug("rejected invalid task ID", slog.Int64("task_id", id))
		return nil, NewTaskNotFoundError()
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, NewTaskNotFoundError()
		}
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if title == "" {
		log.Debug("rejected task with empty title")
		return nil, NewEmptyTitleError()
	}

	task, err := s.repo.Create(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) {
			return nil, NewEmptyTitleError()
		}
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetTask(ctx, id); err != nil {
		return nil, err
	}

	if title == "" {
		log.Debug("rejected update with empty title", slog.Int64("task_id", id))
		return nil, NewEmptyTitleError()
	}

	task, err := s.repo.Update(ctx, id, title)
	if err != nil {
		switch {
		case store.IsNotFoundError(err):
			// Deleted between the existence check and the write.
			return nil, NewTaskNotFoundError()
		case errors.Is(err, domain.ErrEmptyTitle):
			return nil, NewEmptyTitleError()
		}
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
