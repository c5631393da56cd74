// Package main implements the entry point for the task list API server,
// which handles user registration, bearer-token authentication, and
// per-user task management with optimistic-concurrency updates.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/mtakagi/tasklist-api/internal/config"
	"github.com/mtakagi/tasklist-api/internal/platform/logger"
	"github.com/mtakagi/tasklist-api/internal/platform/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, sets up logging and the database, applies
// migrations, and starts the HTTP server. Split from main so failures can
// be returned instead of exiting directly.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.MigrateUp(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	appLogger.Info("Database migrations applied")

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
