//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/platform/migrations"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 10 * time.Second

// Opener opens a connection pool for a URL. postgres.Open and mysql.Open
// both fit once the pool size is bound.
type Opener func(ctx context.Context, url string, maxOpenConns int) (*sql.DB, error)

// GetTestDBWithT opens a database for engine, applies migrations and closes
// it when the test finishes. The test is skipped if no URL is configured.
func GetTestDBWithT(t *testing.T, engine Engine, open Opener) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL(engine)
	if dbURL == "" {
		t.Skipf("%s not set - skipping %s integration test", engine.EnvVar, engine.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := open(ctx, dbURL, 10)
	require.NoError(t, err, "failed to connect to %s at %s", engine.Driver, maskDatabaseURL(dbURL))

	t.Cleanup(func() {
		CleanupDB(t, db)
	})

	SetupTestDatabaseSchema(t, db, engine)
	return db
}

// SetupTestDatabaseSchema applies the embedded migrations for engine.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB, engine Engine) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	err := migrations.Up(ctx, db, engine.Driver, nil)
	require.NoError(t, err, "failed to run migrations")
}

// ResetTasks removes every row from the tasks table.
func ResetTasks(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx, "DELETE FROM tasks")
	require.NoError(t, err, "failed to reset tasks table")
}

// CleanupDB safely closes a database connection.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}
