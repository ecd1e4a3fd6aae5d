package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for expected task failures.
// These are never returned bare; they are wrapped in a *TaskError.
var (
	// ErrTaskNotFound indicates that no task has the requested ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyTitle indicates that a create or update supplied an empty title.
	// API layer should map this to HTTP 400 Bad Request.
	ErrEmptyTitle = errors.New("empty title")
)

// Client-facing messages for the expected failures.
const (
	MessageTaskNotFound = "No such a Task"
	MessageEmptyTitle   = "Empty title"
)

// TaskError is an expected failure with the message and status the caller
// should report.
type TaskError struct {
	// Message is safe to show to clients.
	Message string
	// Status is the HTTP status code for this failure.
	Status int
	// Err is the sentinel this error represents.
	Err error
}

// Error implements the error interface for TaskError.
func (e *TaskError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped sentinel to support errors.Is/errors.As.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewTaskNotFoundError returns the 404 failure for a missing task.
func NewTaskNotFoundError() *TaskError {
	return &TaskError{Message: MessageTaskNotFound, Status: http.StatusNotFound, Err: ErrTaskNotFound}
}

// NewEmptyTitleError returns the 400 failure for an empty title.
func NewEmptyTitleError() *TaskError {
	return &TaskError{Message: MessageEmptyTitle, Status: http.StatusBadRequest, Err: ErrEmptyTitle}
}

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "delete_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
