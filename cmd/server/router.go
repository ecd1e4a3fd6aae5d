package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

// docsPath is where the Swagger UI and OpenAPI documents are served.
const docsPath = "/api-docs"

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	routes := api.Routes(taskHandler)
	api.Mount(r, routes)

	docs, err := api.NewDocs(docsPath, api.BuildOpenAPI(api.Info{
		Title:       "Tasks API",
		Version:     apiVersion,
		Description: "Create, read, update and delete tasks.",
	}, routes))
	if err != nil {
		return nil, err
	}
	docs.Mount(r)

	return r, nil
}
