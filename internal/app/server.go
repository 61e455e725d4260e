package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stringfold/ally/internal/app/health"
	"github.com/stringfold/ally/internal/app/middleware"
	"github.com/stringfold/ally/internal/app/routes"
	"github.com/stringfold/ally/internal/cfg"
	"github.com/stringfold/ally/internal/service/login"
	"github.com/stringfold/ally/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Server is the HTTP transport for the example login app.
type Server struct {
	config     *cfg.Config
	provider   *Provider
	httpServer *http.Server
	router     *gin.Engine
	health     *health.Checker
	logger     logger.Logger
}

// NewServer creates the HTTP server with all dependencies provided by the
// Provider.
func NewServer(provider *Provider) (*Server, error) {
	s := &Server{
		config:   provider.Config,
		provider: provider,
		logger:   provider.Infra.Logger,
	}

	s.logger.Info(context.Background(), "Creating HTTP server...")

	s.setupRoutes()
	s.setupHTTPServer()

	s.logger.Info(context.Background(), "HTTP server created successfully")
	return s, nil
}

// setupRoutes configures all HTTP routes for the application.
func (s *Server) setupRoutes() {
	if s.config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(s.config.Observability.ServiceName))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(s.logger))

	registry := s.provider.Infra.Registry
	s.health = health.NewChecker(map[string]health.Pinger{
		"metrics": health.PingFunc(func(context.Context) error {
			_, err := registry.Gather()
			return err
		}),
	}, s.logger)
	routes.SetupInfra(r, s.health, s.provider.Infra.MetricsHandler)

	loginHandler := login.NewHandler(s.provider.Infra.Reddit, s.provider.Infra.Metrics, s.logger)
	routes.SetupReddit(r, loginHandler)

	s.router = r
}

// setupHTTPServer creates the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.HTTPServer.Port,
		Handler:      s.router,
		ReadTimeout:  s.config.HTTPServer.ReadTimeout,
		WriteTimeout: s.config.HTTPServer.WriteTimeout,
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it shuts down.
func (s *Server) Run() error {
	s.logger.Info(context.Background(), "HTTP server listening",
		logger.Field{Key: "addr", Value: s.httpServer.Addr})

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// Shutdown fails readiness, then drains in-flight requests.
// Infrastructure resources are closed separately by the Provider.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server")
	if s.health != nil {
		s.health.Drain()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
	}

	s.logger.Info(ctx, "HTTP server shutdown complete")
	return nil
}
