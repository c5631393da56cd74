package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtakagi/tasklist-api/internal/config"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/platform/cache"
	"github.com/mtakagi/tasklist-api/internal/platform/postgres"
	"github.com/mtakagi/tasklist-api/internal/ratelimit"
	"github.com/mtakagi/tasklist-api/internal/service"
	"github.com/mtakagi/tasklist-api/internal/service/auth"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore   store.UserStore
	tokenStore  store.TokenStore
	taskStore   store.TaskStore
	v1TaskStore store.V1TaskStore

	// Services
	tokenService auth.TokenService
	authService  *auth.Service
	taskService  *service.TaskService

	// Rate limiters. The login limiter counts failed credential attempts
	// per client; the throttle limiter counts raw requests on the
	// sensitive routes. They run over different windows and are never
	// shared.
	loginLimiter    *ratelimit.Limiter
	throttleLimiter *ratelimit.Limiter
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logger, and database connection must be
// established before this is called.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewUserStore(db)
	app.tokenStore = postgres.NewTokenStore(db)
	app.taskStore = postgres.NewTaskStore(db)
	app.v1TaskStore = postgres.NewV1TaskStore(db)

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth, app.tokenStore, app.userStore)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.loginLimiter = ratelimit.New(time.Duration(cfg.Auth.LoginWindowSeconds) * time.Second)
	app.throttleLimiter = ratelimit.New(time.Minute)

	app.authService = auth.NewService(
		app.userStore,
		app.tokenService,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		app.loginLimiter,
		cfg.Auth.LoginMaxAttempts,
	)

	taskCache := cache.New[*domain.Task](time.Duration(cfg.Tasks.CacheTTLMinutes) * time.Minute)
	app.taskService = service.NewTaskService(db, app.taskStore, taskCache)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
