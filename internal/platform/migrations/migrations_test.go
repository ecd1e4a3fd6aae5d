package migrations_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestFilesEmbeddedForEveryDialect(t *testing.T) {
	for _, driver := range []string{"postgres", "sqlite", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			assert.True(t, migrations.Supported(driver))
			files, err := migrations.Files(driver)
			require.NoError(t, err)
			assert.Contains(t, files, "00001_create_tasks.sql")
		})
	}

	assert.False(t, migrations.Supported("memory"))
	_, err := migrations.Files("memory")
	assert.Error(t, err)
}

func TestUpDownSQLite(t *testing.T) {
	logBuf := &logger.TestLogBuffer{}
	log := slog.New(slog.NewJSONHandler(logBuf, nil))
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, migrations.Up(ctx, db, "sqlite", log))
	assert.Contains(t, logBuf.String(), "migration operation completed")
	assert.Contains(t, logBuf.String(), `"dialect":"sqlite3"`)
	assert.Contains(t, logBuf.String(), `"embedded_files":["00001_create_tasks.sql"]`)
	assert.True(t, tableExists(t, db, "tasks"))

	version, err := migrations.Version(ctx, db, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Applying again is a no-op.
	require.NoError(t, migrations.Up(ctx, db, "sqlite", nil))

	require.NoError(t, migrations.Run(ctx, db, "sqlite", migrations.CommandDown, nil))
	assert.False(t, tableExists(t, db, "tasks"))

	version, err = migrations.Version(ctx, db, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestRunRejectsUnknownInput(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	err := migrations.Run(ctx, db, "oracle", migrations.CommandUp, nil)
	assert.Error(t, err)

	err = migrations.Run(ctx, db, "sqlite", "sideways", nil)
	assert.Error(t, err)
}

func TestSQLiteSchemaRejectsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	require.NoError(t, migrations.Up(ctx, db, "sqlite", nil))

	_, err := db.Exec(`INSERT INTO tasks (title, created_at, updated_at) VALUES ('', datetime('now'), datetime('now'))`)
	assert.Error(t, err, "check constraint must reject empty titles")
}
