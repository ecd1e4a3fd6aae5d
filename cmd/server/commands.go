package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/migrations"
	"github.com/urfave/cli/v3"
)

// newRootCommand returns the top-level CLI command.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks-api",
		Usage: "REST service for managing tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
		},
	}
}

// newServeCommand returns the serve subcommand.
func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run migrations and serve the HTTP API",
		Action: runServe,
	}
}

// newMigrateCommand returns the migrate subcommand and its goose verbs.
func newMigrateCommand() *cli.Command {
	verb := func(name, usage string) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: usage,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runMigrate(ctx, cmd, name)
			},
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema of the configured SQL store",
		Commands: []*cli.Command{
			verb(migrations.CommandUp, "Apply all pending migrations"),
			verb(migrations.CommandDown, "Roll back the most recent migration"),
			verb(migrations.CommandReset, "Roll back all migrations"),
			verb(migrations.CommandStatus, "Show the status of every migration"),
			verb(migrations.CommandVersion, "Show the current schema version"),
		},
	}
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: cmd.String("config")})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Server.LogLevel = strings.ToLower(level)
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// setupLogger configures the default logger from cfg.
func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	l, err := setupLogger(cfg)
	if err != nil {
		return err
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func runMigrate(ctx context.Context, cmd *cli.Command, command string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	l, err := setupLogger(cfg)
	if err != nil {
		return err
	}

	if !migrations.Supported(cfg.Database.Driver) {
		return fmt.Errorf("migrations require a SQL database driver, configured driver is %q", cfg.Database.Driver)
	}

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			l.Error("Error closing database connection", "error", closeErr)
		}
	}()

	return migrations.Run(ctx, db, cfg.Database.Driver, command, l)
}
