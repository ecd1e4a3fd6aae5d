package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (TaskService, *MockTaskRepository) {
	t.Helper()

	repo := new(MockTaskRepository)
	svc, err := NewTaskService(repo, nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return svc, repo
}

// requireTaskError asserts err is a *TaskError with the given status and sentinel.
func requireTaskError(t *testing.T, err error, status int, sentinel error) {
	t.Helper()

	var taskErr *TaskError
	require.True(t, errors.As(err, &taskErr), "expected *TaskError, got %T: %v", err, err)
	assert.Equal(t, status, taskErr.Status)
	assert.ErrorIs(t, err, sentinel)
}

func TestNewTaskService(t *testing.T) {
	t.Run("nil repo", func(t *testing.T) {
		svc, err := NewTaskService(nil, nil)
		assert.Nil(t, svc)

		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_service", svcErr.Operation)
	})

	t.Run("valid", func(t *testing.T) {
		svc, err := NewTaskService(new(MockTaskRepository), nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("passes tasks through", func(t *testing.T) {
		svc, repo := newTestService(t)
		tasks := []*domain.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
		repo.On("List", ctx).Return(tasks, nil)

		got, err := svc.ListTasks(ctx)
		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	})

	t.Run("storage failure is wrapped without status", func(t *testing.T) {
		svc, repo := newTestService(t)
		dbErr := errors.New("connection refused")
		repo.On("List", ctx).Return(nil, dbErr)

		_, err := svc.ListTasks(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)

		var taskErr *TaskError
		assert.False(t, errors.As(err, &taskErr))
	})
}

func TestGetTask(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, repo := newTestService(t)
		task := &domain.Task{ID: 7, Title: "seven"}
		repo.On("GetByID", ctx, int64(7)).Return(task, nil)

		got, err := svc.GetTask(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(9999)).Return(nil, store.ErrTaskNotFound)

		got, err := svc.GetTask(ctx, 9999)
		assert.Nil(t, got)
		requireTaskError(t, err, http.StatusNotFound, ErrTaskNotFound)
		assert.Equal(t, MessageTaskNotFound, err.Error())
	})

	t.Run("wrapped store not-found", func(t *testing.T) {
		svc, repo := newTestService(t)
		mapped := fmt.Errorf("%w: sql: no rows in result set", store.ErrNotFound)
		repo.On("GetByID", ctx, int64(12)).Return(nil, store.NewStoreError("task", "get", "query failed", mapped))

		_, err := svc.GetTask(ctx, 12)
		requireTaskError(t, err, http.StatusNotFound, ErrTaskNotFound)
	})

	t.Run("non-positive id never reaches storage", func(t *testing.T) {
		svc, _ := newTestService(t)

		for _, id := range []int64{0, -3} {
			_, err := svc.GetTask(ctx, id)
			requireTaskError(t, err, http.StatusNotFound, ErrTaskNotFound)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		dbErr := store.NewStoreError("task", "get", "query failed", errors.New("timeout"))
		repo.On("GetByID", ctx, int64(1)).Return(nil, dbErr)

		_, err := svc.GetTask(ctx, 1)

		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "get_task", svcErr.Operation)
	})
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestService(t)
		task := &domain.Task{ID: 1, Title: "write tests"}
		repo.On("Create", ctx, "write tests").Return(task, nil)

		got, err := svc.CreateTask(ctx, "write tests")
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("empty title is rejected before storage", func(t *testing.T) {
		svc, _ := newTestService(t)

		got, err := svc.CreateTask(ctx, "")
		assert.Nil(t, got)
		requireTaskError(t, err, http.StatusBadRequest, ErrEmptyTitle)
		assert.Equal(t, MessageEmptyTitle, err.Error())
	})

	t.Run("whitespace title is accepted", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("Create", ctx, "  ").Return(&domain.Task{ID: 1, Title: "  "}, nil)

		_, err := svc.CreateTask(ctx, "  ")
		assert.NoError(t, err)
	})

	t.Run("storage validation maps to 400", func(t *testing.T) {
		svc, repo := newTestService(t)
		valErr := domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTitle)
		repo.On("Create", ctx, "x").Return(nil, valErr)

		_, err := svc.CreateTask(ctx, "x")
		requireTaskError(t, err, http.StatusBadRequest, ErrEmptyTitle)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("Create", ctx, "x").Return(nil, errors.New("disk full"))

		_, err := svc.CreateTask(ctx, "x")

		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_task", svcErr.Operation)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	existing := &domain.Task{ID: 3, Title: "old"}

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestService(t)
		updated := &domain.Task{ID: 3, Title: "new"}
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		repo.On("Update", ctx, int64(3), "new").Return(updated, nil)

		got, err := svc.UpdateTask(ctx, 3, "new")
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("unknown id wins over empty title", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(9999)).Return(nil, store.ErrTaskNotFound)

		_, err := svc.UpdateTask(ctx, 9999, "")
		requireTaskError(t, err, http.StatusNotFound, ErrTaskNotFound)
	})

	t.Run("empty title leaves storage untouched", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)

		_, err := svc.UpdateTask(ctx, 3, "")
		requireTaskError(t, err, http.StatusBadRequest, ErrEmptyTitle)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("row deleted before write", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		repo.On("Update", ctx, int64(3), "new").Return(nil, store.ErrTaskNotFound)

		_, err := svc.UpdateTask(ctx, 3, "new")
		requireTaskError(t, err, http.StatusNotFound, ErrTaskNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		repo.On("Update", ctx, int64(3), "new").Return(nil, errors.New("deadlock"))

		_, err := svc.UpdateTask(ctx, 3, "new")

		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "update_task", svcErr.Operation)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(4)).Return(&domain.Task{ID: 4, Title: "t"}, nil)
		repo.On("Delete", ctx, int64(4)).Return(nil)

		assert.NoError(t, svc.DeleteTask(ctx, 4))
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(4)).Return(nil, store.ErrTaskNotFound)

		err := svc.DeleteTask(ctx, 4)
		requireTaskError(t, err, http.StatusNotFound, ErrTaskNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, int64(4)).Return(&domain.Task{ID: 4, Title: "t"}, nil)
		repo.On("Delete", ctx, int64(4)).Return(errors.New("locked"))

		var svcErr *TaskServiceError
		require.ErrorAs(t, svc.DeleteTask(ctx, 4), &svcErr)
		assert.Equal(t, "delete_task", svcErr.Operation)
	})
}

func TestTaskErrorFormatting(t *testing.T) {
	err := NewTaskServiceError("get_task", "failed to retrieve task", errors.New("boom"))
	assert.Equal(t, "task service get_task failed: failed to retrieve task: boom", err.Error())
	assert.Nil(t, NewTaskServiceError("op", "msg", nil))

	bare := &TaskServiceError{Operation: "op", Message: "msg"}
	assert.Equal(t, "task service op failed: msg", bare.Error())
}
