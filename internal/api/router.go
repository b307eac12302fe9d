package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/erppro/identity/internal/api/handler"
	"github.com/erppro/identity/internal/api/middleware"
	"github.com/erppro/identity/internal/dependencies/clock"
	"github.com/erppro/identity/internal/services/directory"
	"github.com/erppro/identity/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	SessionService   *session.Service
	DirectoryService *directory.Service
	Clock            clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.SessionService)
	healthHandler := handler.NewHealthHandler(cfg.DirectoryService, cfg.Clock)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.SessionService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for logging in/registering)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes
	protected := api.PathPrefix("/auth").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Advisory password strength check (no auth)
	api.HandleFunc("/password/check", authHandler.PasswordCheck).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	return r
}
