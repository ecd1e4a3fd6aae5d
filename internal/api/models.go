package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskRequest is the payload for creating or updating a task.
// A missing title decodes as "" and is rejected by the service.
type TaskRequest struct {
	Title string `json:"title"`
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
