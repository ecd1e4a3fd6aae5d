// Package main implements the entry point for the Tasks API server, a small
// REST service for creating, reading, updating and deleting tasks.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/phrazzld/tasks-api/internal/redact"
)

// main is the entry point for the tasks-api server.
// With no subcommand it serves the API; "migrate" manages the schema.
func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal", "error", redact.Error(err))
		os.Exit(1)
	}
}
