package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/mysql"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
)

// openDatabase establishes a connection for the configured SQL driver.
func openDatabase(ctx context.Context, dbCfg config.DatabaseConfig) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch dbCfg.Driver {
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, dbCfg.URL)
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, dbCfg.URL, dbCfg.MaxOpenConns)
	case config.DriverMySQL:
		db, err = mysql.Open(ctx, dbCfg.URL, dbCfg.MaxOpenConns)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dbCfg.Driver, err)
	}

	return db, nil
}

// newTaskStore builds the task store for driver. db is nil for the memory driver.
func newTaskStore(driver string, db *sql.DB, logger *slog.Logger) (store.TaskStore, error) {
	switch driver {
	case config.DriverMemory:
		return memory.NewTaskStore(logger), nil
	case config.DriverSQLite:
		return sqlite.NewSQLiteTaskStore(db, logger), nil
	case config.DriverPostgres:
		return postgres.NewPostgresTaskStore(db, logger), nil
	case config.DriverMySQL:
		return mysql.NewMySQLTaskStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
