package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

// OpenAPI document model. Only the parts the route table uses are modelled.
type (
	OpenAPI struct {
		OpenAPI    string              `json:"openapi"    yaml:"openapi"`
		Info       Info                `json:"info"       yaml:"info"`
		Paths      map[string]PathItem `json:"paths"      yaml:"paths"`
		Components Components          `json:"components" yaml:"components"`
	}

	Info struct {
		Title       string `json:"title"                 yaml:"title"`
		Version     string `json:"version"               yaml:"version"`
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
	}

	// PathItem maps lower-case HTTP methods to operations.
	PathItem map[string]Operation

	Operation struct {
		OperationID string                 `json:"operationId"           yaml:"operationId"`
		Tags        []string               `json:"tags,omitempty"        yaml:"tags,omitempty"`
		Summary     string                 `json:"summary,omitempty"     yaml:"summary,omitempty"`
		Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
		Parameters  []Parameter            `json:"parameters,omitempty"  yaml:"parameters,omitempty"`
		RequestBody *RequestBody           `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
		Responses   map[string]ResponseDoc `json:"responses"             yaml:"responses"`
	}

	Parameter struct {
		Name        string `json:"name"                  yaml:"name"`
		In          string `json:"in"                    yaml:"in"`
		Required    bool   `json:"required"              yaml:"required"`
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		Schema      Schema `json:"schema"                yaml:"schema"`
	}

	RequestBody struct {
		Required bool                 `json:"required" yaml:"required"`
		Content  map[string]MediaType `json:"content"  yaml:"content"`
	}

	ResponseDoc struct {
		Description string               `json:"description"       yaml:"description"`
		Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
	}

	MediaType struct {
		Schema Schema `json:"schema" yaml:"schema"`
	}

	Schema struct {
		Ref        string            `json:"$ref,omitempty"       yaml:"$ref,omitempty"`
		Type       string            `json:"type,omitempty"       yaml:"type,omitempty"`
		Format     string            `json:"format,omitempty"     yaml:"format,omitempty"`
		Items      *Schema           `json:"items,omitempty"      yaml:"items,omitempty"`
		Properties map[string]Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
		Required   []string          `json:"required,omitempty"   yaml:"required,omitempty"`
		Example    any               `json:"example,omitempty"    yaml:"example,omitempty"`
	}

	Components struct {
		Schemas map[string]Schema `json:"schemas" yaml:"schemas"`
	}
)

func ref(name string) Schema {
	return Schema{Ref: "#/components/schemas/" + name}
}

func componentSchemas() map[string]Schema {
	return map[string]Schema{
		schemaTask: {
			Type: "object",
			Properties: map[string]Schema{
				"id":        {Type: "integer", Format: "int64", Example: 1},
				"title":     {Type: "string", Example: "Write the report"},
				"createdAt": {Type: "string", Format: "date-time"},
				"updatedAt": {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "title", "createdAt", "updatedAt"},
		},
		schemaTaskList: {
			Type:  "array",
			Items: &Schema{Ref: "#/components/schemas/" + schemaTask},
		},
		schemaTaskRequest: {
			Type: "object",
			Properties: map[string]Schema{
				"title": {Type: "string", Example: "Write the report"},
			},
			Required: []string{"title"},
		},
		schemaError: {
			Type: "object",
			Properties: map[string]Schema{
				"message": {Type: "string", Example: "No such a Task"},
				"status":  {Type: "integer", Example: 404},
				"traceId": {Type: "string"},
			},
			Required: []string{"message", "status"},
		},
	}
}

// BuildOpenAPI generates an OpenAPI 3.0 document from routes.
func BuildOpenAPI(info Info, routes []Route) *OpenAPI {
	doc := &OpenAPI{
		OpenAPI:    "3.0.3",
		Info:       info,
		Paths:      make(map[string]PathItem),
		Components: Components{Schemas: componentSchemas()},
	}

	for _, route := range routes {
		op := Operation{
			OperationID: route.Name,
			Summary:     route.Summary,
			Description: route.Description,
			Responses:   make(map[string]ResponseDoc, len(route.Responses)),
		}
		if route.Tag != "" {
			op.Tags = []string{route.Tag}
		}

		for _, p := range route.Params {
			op.Parameters = append(op.Parameters, Parameter{
				Name:        p.Name,
				In:          "path",
				Required:    true,
				Description: p.Description,
				Schema:      Schema{Type: p.Type, Format: p.Format},
			})
		}

		if route.RequestSchema != "" {
			op.RequestBody = &RequestBody{
				Required: true,
				Content:  map[string]MediaType{"application/json": {Schema: ref(route.RequestSchema)}},
			}
		}

		for _, resp := range route.Responses {
			rd := ResponseDoc{Description: resp.Description}
			switch {
			case resp.ContentType != "":
				rd.Content = map[string]MediaType{resp.ContentType: {Schema: Schema{Type: "string"}}}
			case resp.Schema != "":
				rd.Content = map[string]MediaType{"application/json": {Schema: ref(resp.Schema)}}
			}
			op.Responses[strconv.Itoa(resp.Status)] = rd
		}

		item, ok := doc.Paths[route.Pattern]
		if !ok {
			item = make(PathItem)
			doc.Paths[route.Pattern] = item
		}
		item[strings.ToLower(route.Method)] = op
	}

	return doc
}

// Docs serves the API documentation: a Swagger UI page plus the OpenAPI
// document rendered as JSON and YAML.
type Docs struct {
	basePath string
	json     []byte
	yaml     []byte
}

// NewDocs renders doc once so every request serves the same bytes.
func NewDocs(basePath string, doc *OpenAPI) (*Docs, error) {
	jsonDoc, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi json: %w", err)
	}
	yamlDoc, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi yaml: %w", err)
	}
	return &Docs{basePath: basePath, json: jsonDoc, yaml: yamlDoc}, nil
}

// Mount registers the documentation routes under the base path.
func (d *Docs) Mount(r chi.Router) {
	r.Get(d.basePath, d.ServeUI)
	r.Get(d.basePath+"/", d.ServeUI)
	r.Get(d.basePath+"/openapi.json", d.ServeJSON)
	r.Get(d.basePath+"/openapi.yaml", d.ServeYAML)
}

// ServeJSON writes the OpenAPI document as JSON.
func (d *Docs) ServeJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(d.json)
}

// ServeYAML writes the OpenAPI document as YAML.
func (d *Docs) ServeYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(d.yaml)
}

// ServeUI writes a Swagger UI page that loads the JSON document.
func (d *Docs) ServeUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, swaggerUIPage, d.basePath+"/openapi.json")
}

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Tasks API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: %q, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`
