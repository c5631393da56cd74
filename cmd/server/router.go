package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mtakagi/tasklist-api/internal/api"
	apiMiddleware "github.com/mtakagi/tasklist-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. The request throttle covers only registration and login;
// the auth middleware guards logout and the /v2 tree. The /tasks baseline
// is deliberately left without either gate.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	taskHandler := api.NewTaskHandler(app.taskService)
	v1TaskHandler := api.NewV1TaskHandler(app.v1TaskStore)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	throttle := apiMiddleware.NewThrottle(app.throttleLimiter, app.config.Auth.ThrottlePerMinute)

	// Authentication endpoints (public, throttled)
	r.Group(func(r chi.Router) {
		r.Use(throttle.Limit)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/logout", authHandler.Logout)
	})

	// Baseline task endpoints (public, no ownership or versioning)
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", v1TaskHandler.List)
		r.Post("/", v1TaskHandler.Create)
		r.Get("/{id}", v1TaskHandler.Get)
		r.Put("/{id}", v1TaskHandler.Update)
		r.Delete("/", v1TaskHandler.DeleteAll)
		r.Delete("/{id}", v1TaskHandler.Delete)
	})

	// Authenticated task endpoints
	r.Route("/v2/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/", taskHandler.DeleteAll)
		r.Delete("/{id}", taskHandler.Delete)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
