// internal/api/server.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/ichimoku-dashboard/internal/api/handler/api"
	"github.com/newthinker/ichimoku-dashboard/internal/api/handler/web"
	"github.com/newthinker/ichimoku-dashboard/internal/api/middleware"
	"github.com/newthinker/ichimoku-dashboard/internal/api/response"
	"github.com/newthinker/ichimoku-dashboard/internal/core"
	"github.com/newthinker/ichimoku-dashboard/internal/logger"
	"github.com/newthinker/ichimoku-dashboard/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Route paths
const (
	PathDashboard    = "/"
	PathAPIDashboard = "/api/v1/dashboard"
	PathAPISnapshot  = "/api/v1/snapshot"
	PathHealth       = "/api/health"
)

// Server represents the HTTP server for the dashboard
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	presence   SnapshotPresence
}

// Config holds server configuration
type Config struct {
	Host   string
	Port   int
	APIKey string
	// TemplatesDir overrides the embedded templates when set.
	TemplatesDir string
	// MetricsPath is where Prometheus metrics are served. Empty disables it.
	MetricsPath string
}

// SnapshotLoader loads the current analysis snapshot.
type SnapshotLoader interface {
	Load(ctx context.Context) (*core.Snapshot, error)
}

// SnapshotPresence reports whether the snapshot object exists.
type SnapshotPresence interface {
	Present(ctx context.Context) (bool, error)
}

// Dependencies holds the components the server renders from.
type Dependencies struct {
	Snapshots SnapshotLoader
	// Presence is optional; when set, health reports snapshot_present.
	Presence SnapshotPresence
	// Metrics is optional; without it no metrics are recorded or served.
	Metrics *metrics.Registry
	// Location is the display timezone.
	Location *time.Location
	// SignalDefault is the "only with signal" toggle on first load.
	SignalDefault bool
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, log *zap.Logger) (*Server, error) {
	if deps.Snapshots == nil {
		return nil, errors.New("snapshot loader is required")
	}
	log = logger.OrNop(log)

	s := &Server{
		logger:   log,
		mux:      http.NewServeMux(),
		presence: deps.Presence,
	}

	if err := s.setupRoutes(cfg, deps); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.wrap(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) error {
	var recorder interface{ RecordRender(surface, state string) }
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	// Web UI routes
	webHandler, err := web.NewHandler(deps.Snapshots, web.Options{
		TemplatesDir:   cfg.TemplatesDir,
		Location:       deps.Location,
		SignalDefault:  deps.SignalDefault,
		RenderRecorder: recorder,
		Logger:         s.logger,
	})
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	s.mux.HandleFunc("GET /{$}", webHandler.Dashboard)

	// API routes
	dashHandler := apihandler.NewDashboardHandler(deps.Snapshots, apihandler.DashboardOptions{
		Location:       deps.Location,
		SignalDefault:  deps.SignalDefault,
		RenderRecorder: recorder,
		Logger:         s.logger,
	})
	auth := middleware.APIKeyAuth(cfg.APIKey)
	s.mux.Handle("GET "+PathAPIDashboard, auth(http.HandlerFunc(dashHandler.Dashboard)))
	s.mux.Handle("GET "+PathAPISnapshot, auth(http.HandlerFunc(dashHandler.Snapshot)))

	s.mux.HandleFunc("GET "+PathHealth, s.handleHealth)

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	return nil
}

// wrap applies access logging and, when enabled, HTTP metrics.
func (s *Server) wrap(cfg Config, deps Dependencies) http.Handler {
	var h http.Handler = s.mux
	if deps.Metrics != nil {
		routes := []string{PathDashboard, PathAPIDashboard, PathAPISnapshot, PathHealth}
		if cfg.MetricsPath != "" {
			routes = append(routes, cfg.MetricsPath)
		}
		h = metrics.HTTPMiddleware(deps.Metrics, routes...)(h)
	}
	return metrics.LoggingMiddleware(s.logger)(h)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if s.presence != nil {
		present, err := s.presence.Present(r.Context())
		if err != nil {
			s.logger.Warn("checking snapshot presence", zap.Error(err))
		}
		body["snapshot_present"] = present && err == nil
	}
	response.JSON(w, http.StatusOK, body)
}
