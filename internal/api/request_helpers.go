package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// getPathID extracts an integer ID from the URL path parameters.
// Input that is not an integer yields 0. No task ever has ID 0, so the
// request goes on to fail as a lookup miss.
func getPathID(r *http.Request, paramName string) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// decodeTaskRequest reads a TaskRequest from a JSON or URL-encoded form body.
// A form body without a title field yields an empty title.
func decodeTaskRequest(r *http.Request) (TaskRequest, error) {
	var req TaskRequest

	if shared.IsFormRequest(r) {
		form, err := shared.DecodeForm(r)
		if err != nil {
			return req, err
		}
		req.Title = form.Get("title")
		return req, nil
	}

	err := shared.DecodeJSON(r, &req)
	return req, err
}
