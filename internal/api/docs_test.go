package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newDocsRouter(t *testing.T) (*chi.Mux, []Route) {
	t.Helper()

	routes := Routes(NewTaskHandler(&mockTaskService{}, nil))
	docs, err := NewDocs("/api-docs", BuildOpenAPI(Info{Title: "Tasks API", Version: "test"}, routes))
	require.NoError(t, err)

	r := chi.NewRouter()
	docs.Mount(r)
	return r, routes
}

func TestBuildOpenAPICoversEveryRoute(t *testing.T) {
	routes := Routes(NewTaskHandler(&mockTaskService{}, nil))
	doc := BuildOpenAPI(Info{Title: "Tasks API", Version: "test"}, routes)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	for _, route := range routes {
		item, ok := doc.Paths[route.Pattern]
		require.True(t, ok, "missing path %s", route.Pattern)

		op, ok := item[strings.ToLower(route.Method)]
		require.True(t, ok, "missing %s %s", route.Method, route.Pattern)
		assert.Equal(t, route.Name, op.OperationID)
		assert.Len(t, op.Responses, len(route.Responses))
	}

	get := doc.Paths["/tasks/{id}"]["get"]
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "id", get.Parameters[0].Name)
	assert.Equal(t, "path", get.Parameters[0].In)

	post := doc.Paths["/tasks"]["post"]
	require.NotNil(t, post.RequestBody)
	assert.Equal(t, "#/components/schemas/TaskRequest",
		post.RequestBody.Content["application/json"].Schema.Ref)
	assert.Contains(t, post.Responses, "201")

	del := doc.Paths["/tasks/{id}"]["delete"]
	assert.Empty(t, del.Responses["204"].Content)

	for _, name := range []string{"Task", "TaskList", "TaskRequest", "Error"} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
}

func TestDocsServeJSON(t *testing.T) {
	r, _ := newDocsRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/tasks")
	assert.Contains(t, paths, "/tasks/{id}")
	assert.Contains(t, paths, "/ping")
}

func TestDocsServeYAML(t *testing.T) {
	r, _ := newDocsRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs/openapi.yaml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths["/tasks/{id}"], "put")
	assert.Contains(t, doc.Paths["/tasks/{id}"], "delete")
}

func TestDocsServeUI(t *testing.T) {
	r, _ := newDocsRouter(t)

	for _, path := range []string{"/api-docs", "/api-docs/"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), `"/api-docs/openapi.json"`)
		assert.Contains(t, rec.Body.String(), "swagger-ui")
	}
}
