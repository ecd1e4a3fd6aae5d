package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed sql
var embedded embed.FS

// TableName is the goose bookkeeping table.
const TableName = "schema_migrations"

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// goose keeps dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// dialects maps configuration driver names onto goose dialects and
// directories under sql/.
var dialects = map[string]struct {
	goose string
	dir   string
}{
	"postgres": {goose: "postgres", dir: "sql/postgres"},
	"sqlite":   {goose: "sqlite3", dir: "sql/sqlite"},
	"mysql":    {goose: "mysql", dir: "sql/mysql"},
}

// Supported reports whether driver has embedded migrations.
func Supported(driver string) bool {
	_, ok := dialects[driver]
	return ok
}

// Files returns the migration file names embedded for driver.
func Files(driver string) ([]string, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	entries, err := fs.ReadDir(embedded, d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// slogGooseLogger adapts the goose logger interface to use slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding messages to slog.Error.
// It does not exit; goose returns the error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Run executes a goose command against db using the migrations embedded for driver.
func Run(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Use a correlation ID for all migration logs to allow tracing the entire operation
	migrationLogger := logger.With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
		"dialect", d.goose,
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetBaseFS(embedded)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("failed to set goose dialect %s: %w", d.goose, err)
	}

	files, err := Files(driver)
	if err != nil {
		return err
	}

	startTime := time.Now()
	migrationLogger.Info("starting migration operation", "embedded_files", files)

	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, d.dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, d.dir)
	case CommandReset:
		err = goose.ResetContext(ctx, db, d.dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, d.dir)
	case CommandVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			migrationLogger.Info("current schema version", "version", version)
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	if err != nil {
		migrationLogger.Error("migration operation failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("migration operation completed",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	return Run(ctx, db, driver, CommandUp, logger)
}

// Version reports the schema version recorded in db.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	d, ok := dialects[driver]
	if !ok {
		return 0, fmt.Errorf("no migrations for driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(TableName)
	if err := goose.SetDialect(d.goose); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect %s: %w", d.goose, err)
	}
	return goose.GetDBVersionContext(ctx, db)
}
