// Package service contains the task use cases. It sits between the HTTP
// layer and the repositories defined in internal/store, enforcing the rules
// storage does not know about: a task must exist before it can be updated or
// deleted, and its title may not be empty.
//
// Expected failures are returned as *TaskError values carrying the message
// and HTTP status the delivery layer should report. Each TaskError wraps a
// sentinel (ErrTaskNotFound, ErrEmptyTitle) so callers can match with
// errors.Is. Unexpected failures are wrapped in *TaskServiceError and carry
// no status.
//
// The service depends on the TaskRepository interface only, never on a
// specific storage implementation.
package service
