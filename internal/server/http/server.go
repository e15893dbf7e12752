// Package httpserver provides the HTTP REST API for the research network service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/scholarnet/research-network-service/internal/analytics"
	"github.com/scholarnet/research-network-service/internal/observability"
)

// Server is the HTTP REST API server. It serves the read-only views of one
// pipeline snapshot; the snapshot is immutable, so handlers share it without
// locking.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	snapshot   *analytics.Snapshot
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// NewServer creates a new HTTP server over one derived snapshot.
// metrics may be nil when metrics collection is disabled.
func NewServer(cfg Config, snapshot *analytics.Snapshot, metrics *observability.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		snapshot: snapshot,
		metrics:  metrics,
		logger:   logger.With().Str("component", "http-server").Logger(),
	}

	s.router = s.buildRouter(cfg)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter(cfg Config) chi.Router {
	r := chi.NewRouter()

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Correlation-ID"},
		MaxAge:         300,
	}))
	r.Use(jsonContentTypeMiddleware)
	r.Use(s.requestLogMiddleware)
	r.Use(s.requestMetricsMiddleware)

	// Index and health endpoints
	r.Get("/", s.indexHandler)
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	// Read API
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/network/citation", s.getCitationNetwork)
		r.Get("/network/collaboration", s.getCollaborationNetwork)
		r.Get("/timeline", s.getTimeline)
		r.Get("/histogram/{year}", s.getHistogram)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router returns the underlying handler, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler reports readiness: the server is ready once a non-empty
// snapshot has been computed.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if s.snapshot == nil || s.snapshot.RecordCount == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"error":  "no snapshot loaded",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ready",
		"records": s.snapshot.RecordCount,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort log; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
