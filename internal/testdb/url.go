//go:build integration

package testdb

import (
	"os"

	"github.com/phrazzld/tasks-api/internal/redact"
)

// Engine identifies a database server used by integration tests.
type Engine struct {
	// Driver is the configuration driver name, also used to pick migrations.
	Driver string
	// EnvVar holds the connection URL for this engine.
	EnvVar string
}

// Supported engines.
var (
	Postgres = Engine{Driver: "postgres", EnvVar: "TASKS_TEST_POSTGRES_URL"}
	MySQL    = Engine{Driver: "mysql", EnvVar: "TASKS_TEST_MYSQL_URL"}
)

// GetTestDatabaseURL returns the configured URL for engine, or "" when unset.
func GetTestDatabaseURL(engine Engine) string {
	return os.Getenv(engine.EnvVar)
}

// ShouldSkipDatabaseTest reports whether no server is configured for engine.
func ShouldSkipDatabaseTest(engine Engine) bool {
	return GetTestDatabaseURL(engine) == ""
}

// maskDatabaseURL masks credentials and hosts so a URL can appear in test output.
func maskDatabaseURL(dbURL string) string {
	return redact.String(dbURL)
}
