package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Client-facing messages that do not come from the service layer.
const (
	messageInvalidRequest = "Invalid request format"
	messageUnexpected     = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Expected
// failures carry their own status; anything else is a 500.
func MapErrorToStatusCode(err error) int {
	var taskErr *service.TaskError
	if errors.As(err, &taskErr) && taskErr.Status != 0 {
		return taskErr.Status
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns a message that is safe to show to clients.
// Raw error text never reaches a response.
func GetSafeErrorMessage(err error) string {
	var taskErr *service.TaskError
	if errors.As(err, &taskErr) && taskErr.Message != "" {
		return taskErr.Message
	}
	return messageUnexpected
}

// HandleAPIError writes the error response for err and logs the details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
