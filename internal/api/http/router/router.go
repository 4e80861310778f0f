// Package router wires handlers and middleware into the HTTP mux.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/driveassist/auth-server/internal/api/http/handler"
	"github.com/driveassist/auth-server/internal/api/http/middleware"
	"github.com/driveassist/auth-server/internal/logger"
	"github.com/driveassist/auth-server/internal/metrics"
	"github.com/driveassist/auth-server/internal/model"
)

// Router builds the HTTP route tree.
type Router struct {
	authService  handler.AuthService
	driveService handler.DriveService
	verifier     middleware.SessionVerifier
	db           handler.Pinger
	ctxManager   model.ContextManager
	registry     *prometheus.Registry
	providerTag  string
	logger       *logger.Logger
}

// New creates a Router with its collaborators.
func New(
	authService handler.AuthService,
	driveService handler.DriveService,
	verifier middleware.SessionVerifier,
	db handler.Pinger,
	ctxManager model.ContextManager,
	registry *prometheus.Registry,
	providerTag string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:  authService,
		driveService: driveService,
		verifier:     verifier,
		db:           db,
		ctxManager:   ctxManager,
		registry:     registry,
		providerTag:  providerTag,
		logger:       logger,
	}
}

// Register builds the mux. The OAuth flow routes stay outside the
// authentication middleware; everything user-scoped goes behind it.
func (rt *Router) Register() http.Handler {
	r := chi.NewRouter()

	logging := middleware.NewLogging(rt.logger)
	authenticate := middleware.NewAuthenticate(rt.verifier, rt.ctxManager, rt.logger)

	authHandler := handler.NewAuth(rt.authService, rt.ctxManager, rt.providerTag, rt.logger)
	driveHandler := handler.NewDrive(rt.driveService, rt.ctxManager, rt.logger)
	healthHandler := handler.NewHealth(rt.db)

	r.Use(logging.Handle)

	r.Get("/health", healthHandler.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(rt.registry))

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.Login)
		r.Get("/google", authHandler.Callback)
		r.Post("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handle)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Route("/drive", func(r chi.Router) {
		r.Use(authenticate.Handle)
		r.Get("/files", driveHandler.Files)
	})

	return r
}
