package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTaskService is a mock implementation of the TaskService interface
type mockTaskService struct {
	listFn   func(ctx context.Context) ([]*domain.Task, error)
	getFn    func(ctx context.Context, id int64) (*domain.Task, error)
	createFn func(ctx context.Context, title string) (*domain.Task, error)
	updateFn func(ctx context.Context, id int64, title string) (*domain.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return m.listFn(ctx)
}

func (m *mockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return m.getFn(ctx, id)
}

func (m *mockTaskService) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	return m.createFn(ctx, title)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, id int64, title string) (*domain.Task, error) {
	return m.updateFn(ctx, id, title)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleTask(id int64, title string) *domain.Task {
	return &domain.Task{ID: id, Title: title, CreatedAt: testTime, UpdatedAt: testTime}
}

// serve routes req through a chi router so URL params resolve.
func serve(t *testing.T, svc service.TaskService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	Mount(r, Routes(NewTaskHandler(svc, nil)))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var body shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestListTasksHandler(t *testing.T) {
	t.Run("returns array", func(t *testing.T) {
		svc := &mockTaskService{listFn: func(ctx context.Context) ([]*domain.Task, error) {
			return []*domain.Task{sampleTask(1, "a"), sampleTask(2, "b")}, nil
		}}

		rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body []TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body, 2)
		assert.Equal(t, int64(2), body[1].ID)
		assert.Equal(t, "b", body[1].Title)
	})

	t.Run("empty store encodes empty array", func(t *testing.T) {
		svc := &mockTaskService{listFn: func(ctx context.Context) ([]*domain.Task, error) {
			return []*domain.Task{}, nil
		}}

		rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("storage failure is 500 without details", func(t *testing.T) {
		svc := &mockTaskService{listFn: func(ctx context.Context) ([]*domain.Task, error) {
			return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
		}}

		rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "An unexpected error occurred", body.Message)
		assert.Equal(t, http.StatusInternalServerError, body.Status)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})
}

func TestGetTaskHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		serviceErr     error
		expectedID     int64
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "found",
			path:           "/tasks/5",
			expectedID:     5,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing",
			path:           "/tasks/9999",
			serviceErr:     service.NewTaskNotFoundError(),
			expectedID:     9999,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "No such a Task",
		},
		{
			name:           "non-numeric id becomes zero",
			path:           "/tasks/abc",
			serviceErr:     service.NewTaskNotFoundError(),
			expectedID:     0,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "No such a Task",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID int64 = -1
			svc := &mockTaskService{getFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				gotID = id
				if tc.serviceErr != nil {
					return nil, tc.serviceErr
				}
				return sampleTask(id, "found"), nil
			}}

			rec := serve(t, svc, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.expectedID, gotID)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedMsg != "" {
				body := decodeError(t, rec)
				assert.Equal(t, tc.expectedMsg, body.Message)
				assert.Equal(t, tc.expectedStatus, body.Status)
				return
			}

			var body TaskResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.expectedID, body.ID)
			assert.True(t, testTime.Equal(body.CreatedAt))
		})
	}
}

func TestCreateTaskHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		contentType    string
		expectCall     bool
		expectedTitle  string
		serviceErr     error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "created",
			body:           `{"title":"write docs"}`,
			expectCall:     true,
			expectedTitle:  "write docs",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty title",
			body:           `{"title":""}`,
			expectCall:     true,
			serviceErr:     service.NewEmptyTitleError(),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Empty title",
		},
		{
			name:           "missing title is empty",
			body:           `{}`,
			expectCall:     true,
			serviceErr:     service.NewEmptyTitleError(),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Empty title",
		},
		{
			name:           "empty body is empty title",
			body:           ``,
			expectCall:     true,
			serviceErr:     service.NewEmptyTitleError(),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Empty title",
		},
		{
			name:           "malformed json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request format",
		},
		{
			name:           "trailing data after json",
			body:           `{"title":"x"} trailing`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request format",
		},
		{
			name:           "form body",
			body:           "title=from+a+form",
			contentType:    "application/x-www-form-urlencoded",
			expectCall:     true,
			expectedTitle:  "from a form",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "form body without title",
			body:           "other=1",
			contentType:    "application/x-www-form-urlencoded",
			expectCall:     true,
			serviceErr:     service.NewEmptyTitleError(),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Empty title",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			svc := &mockTaskService{createFn: func(ctx context.Context, title string) (*domain.Task, error) {
				called = true
				if tc.serviceErr != nil {
					return nil, tc.serviceErr
				}
				assert.Equal(t, tc.expectedTitle, title)
				return sampleTask(1, title), nil
			}}

			contentType := tc.contentType
			if contentType == "" {
				contentType = "application/json"
			}
			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", contentType)
			rec := serve(t, svc, req)

			assert.Equal(t, tc.expectCall, called)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedMsg != "" {
				assert.Equal(t, tc.expectedMsg, decodeError(t, rec).Message)
				return
			}

			var body TaskResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, int64(1), body.ID)
			assert.Equal(t, tc.expectedTitle, body.Title)
		})
	}
}

func TestUpdateTaskHandler(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		svc := &mockTaskService{updateFn: func(ctx context.Context, id int64, title string) (*domain.Task, error) {
			assert.Equal(t, int64(3), id)
			return sampleTask(id, title), nil
		}}

		req := httptest.NewRequest(http.MethodPut, "/tasks/3", strings.NewReader(`{"title":"renamed"}`))
		rec := serve(t, svc, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "renamed", body.Title)
	})

	t.Run("service status is propagated", func(t *testing.T) {
		svc := &mockTaskService{updateFn: func(ctx context.Context, id int64, title string) (*domain.Task, error) {
			return nil, service.NewTaskNotFoundError()
		}}

		req := httptest.NewRequest(http.MethodPut, "/tasks/xyz", strings.NewReader(`{"title":""}`))
		rec := serve(t, svc, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No such a Task", decodeError(t, rec).Message)
	})

	t.Run("malformed json", func(t *testing.T) {
		svc := &mockTaskService{updateFn: func(ctx context.Context, id int64, title string) (*domain.Task, error) {
			t.Fatal("service must not be called")
			return nil, nil
		}}

		req := httptest.NewRequest(http.MethodPut, "/tasks/3", strings.NewReader(`not json`))
		rec := serve(t, svc, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateTaskHandlerFormBody(t *testing.T) {
	svc := &mockTaskService{updateFn: func(ctx context.Context, id int64, title string) (*domain.Task, error) {
		assert.Equal(t, int64(4), id)
		return sampleTask(id, title), nil
	}}

	req := httptest.NewRequest(http.MethodPut, "/tasks/4", strings.NewReader("title=renamed"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(t, svc, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "renamed", body.Title)
}

func TestDeleteTaskHandler(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &mockTaskService{deleteFn: func(ctx context.Context, id int64) error {
			assert.Equal(t, int64(8), id)
			return nil
		}}

		rec := serve(t, svc, httptest.NewRequest(http.MethodDelete, "/tasks/8", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		svc := &mockTaskService{deleteFn: func(ctx context.Context, id int64) error {
			return service.NewTaskNotFoundError()
		}}

		rec := serve(t, svc, httptest.NewRequest(http.MethodDelete, "/tasks/8", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPing(t *testing.T) {
	rec := serve(t, &mockTaskService{}, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}
