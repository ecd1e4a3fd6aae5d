package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Schema names shared by the route table and the OpenAPI components.
const (
	schemaTask        = "Task"
	schemaTaskList    = "TaskList"
	schemaTaskRequest = "TaskRequest"
	schemaError       = "Error"
)

// Param describes a path parameter.
type Param struct {
	Name        string
	Description string
	Type        string
	Format      string
}

// Response describes one documented response of a route.
type Response struct {
	Status      int
	Description string
	// Schema names a component schema; empty means no body.
	Schema string
	// ContentType overrides application/json for non-JSON bodies.
	ContentType string
}

// Route is a single HTTP endpoint. The same table registers the chi handlers
// and generates the OpenAPI document, so the two cannot drift apart.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Tag         string
	Summary     string
	Description string
	Params      []Param
	// RequestSchema names the JSON body schema; empty means no body.
	RequestSchema string
	Responses     []Response
	Handler       http.HandlerFunc
}

var idParam = Param{
	Name:        "id",
	Description: "Task ID. Input that is not an integer matches no task.",
	Type:        "integer",
	Format:      "int64",
}

var (
	responseNotFound = Response{Status: http.StatusNotFound, Description: "No such a Task", Schema: schemaError}
	responseBadTitle = Response{Status: http.StatusBadRequest, Description: "Empty title or malformed body", Schema: schemaError}
	responseInternal = Response{Status: http.StatusInternalServerError, Description: "Unexpected error", Schema: schemaError}
)

// Routes returns every API route served by h, in registration order.
func Routes(h *TaskHandler) []Route {
	return []Route{
		{
			Name:        "listTasks",
			Method:      http.MethodGet,
			Pattern:     "/tasks",
			Tag:         "tasks",
			Summary:     "List tasks",
			Description: "Returns every task ordered by ID.",
			Responses: []Response{
				{Status: http.StatusOK, Description: "All tasks", Schema: schemaTaskList},
				responseInternal,
			},
			Handler: h.ListTasks,
		},
		{
			Name:        "getTask",
			Method:      http.MethodGet,
			Pattern:     "/tasks/{id}",
			Tag:         "tasks",
			Summary:     "Get a task",
			Description: "Returns the task with the given ID.",
			Params:      []Param{idParam},
			Responses: []Response{
				{Status: http.StatusOK, Description: "The task", Schema: schemaTask},
				responseNotFound,
				responseInternal,
			},
			Handler: h.GetTask,
		},
		{
			Name:          "createTask",
			Method:        http.MethodPost,
			Pattern:       "/tasks",
			Tag:           "tasks",
			Summary:       "Create a task",
			Description:   "Creates a task. The title must not be empty.",
			RequestSchema: schemaTaskRequest,
			Responses: []Response{
				{Status: http.StatusCreated, Description: "The created task", Schema: schemaTask},
				responseBadTitle,
				responseInternal,
			},
			Handler: h.CreateTask,
		},
		{
			Name:          "updateTask",
			Method:        http.MethodPut,
			Pattern:       "/tasks/{id}",
			Tag:           "tasks",
			Summary:       "Update a task",
			Description:   "Replaces the title of a task. An unknown ID is reported before an empty title.",
			Params:        []Param{idParam},
			RequestSchema: schemaTaskRequest,
			Responses: []Response{
				{Status: http.StatusOK, Description: "The updated task", Schema: schemaTask},
				responseBadTitle,
				responseNotFound,
				responseInternal,
			},
			Handler: h.UpdateTask,
		},
		{
			Name:        "deleteTask",
			Method:      http.MethodDelete,
			Pattern:     "/tasks/{id}",
			Tag:         "tasks",
			Summary:     "Delete a task",
			Description: "Deletes the task with the given ID.",
			Params:      []Param{idParam},
			Responses: []Response{
				{Status: http.StatusNoContent, Description: "Deleted"},
				responseNotFound,
				responseInternal,
			},
			Handler: h.DeleteTask,
		},
		{
			Name:        "ping",
			Method:      http.MethodGet,
			Pattern:     "/ping",
			Tag:         "health",
			Summary:     "Liveness check",
			Description: "Always answers pong.",
			Responses: []Response{
				{Status: http.StatusOK, Description: "pong", ContentType: "text/plain"},
			},
			Handler: Ping,
		},
	}
}

// Mount registers routes on r.
func Mount(r chi.Router, routes []Route) {
	for _, route := range routes {
		r.Method(route.Method, route.Pattern, route.Handler)
	}
}
