// Package api handles incoming HTTP requests for the task resource. It
// decodes requests, calls the task service and maps service errors onto
// HTTP status codes. The route table in routes.go drives both handler
// registration and the OpenAPI document served under /api-docs.
package api
