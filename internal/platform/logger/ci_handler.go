package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ciEnvVars lists the environment variables copied onto every record when
// running under CI, keyed by the attribute name they are logged as.
var ciEnvVars = map[string]string{
	"ci_provider":   "CI_PROVIDER",
	"ci_run_id":     "GITHUB_RUN_ID",
	"ci_job":        "GITHUB_JOB",
	"ci_workflow":   "GITHUB_WORKFLOW",
	"ci_commit_sha": "GITHUB_SHA",
	"ci_ref":        "GITHUB_REF",
}

// IsCIEnvironment reports whether the process runs under a CI system.
func IsCIEnvironment() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}

// CIHandler is a slog.Handler that adds CI environment metadata to log records.
type CIHandler struct {
	handler  slog.Handler
	metadata []slog.Attr
}

// NewCIHandler creates a CIHandler writing JSON to out.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	var handlerOpts slog.HandlerOptions
	if opts != nil {
		handlerOpts = *opts
	}

	return &CIHandler{
		handler:  slog.NewJSONHandler(out, &handlerOpts),
		metadata: ciMetadata(),
	}
}

func ciMetadata() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(ciEnvVars))
	for key, env := range ciEnvVars {
		if value := os.Getenv(env); value != "" {
			attrs = append(attrs, slog.String(key, value))
		}
	}
	return attrs
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{handler: h.handler.WithAttrs(attrs), metadata: h.metadata}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{handler: h.handler.WithGroup(name), metadata: h.metadata}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()
	enhanced.AddAttrs(h.metadata...)
	return h.handler.Handle(ctx, enhanced)
}
