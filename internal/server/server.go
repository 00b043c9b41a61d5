package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/apiclient"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
	"github.com/FACorreiaa/negocios-templui/internal/routes"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	api    *apiclient.Client
	store  *visitor.Store
	router http.Handler
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	api, err := apiclient.New(cfg.Upstream, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}
	logger.Info("Upstream client ready",
		zap.String("base_url", cfg.Upstream.BaseURL),
		zap.Duration("timeout", cfg.Upstream.Timeout))

	return &Server{
		cfg:    cfg,
		logger: logger,
		api:    api,
		store:  visitor.NewStore(cfg, logger),
	}, nil
}

// Dependencies returns what the router needs to build the handlers.
func (s *Server) Dependencies() routes.Dependencies {
	return routes.Dependencies{
		Config: s.cfg,
		API:    s.api,
		Store:  s.store,
		Logger: s.logger,
	}
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
