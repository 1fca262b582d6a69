// Package server provides the optional local status server: health, the
// session ledger, Prometheus metrics, a live snapshot websocket and an
// MJPEG view of the game window.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/handpong/internal/log"
	"github.com/ayusman/handpong/internal/metrics"
	"github.com/ayusman/handpong/internal/server/api"
	"github.com/ayusman/handpong/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Config holds the server configuration. Nil parts disable their routes.
type Config struct {
	Store   *store.Store
	Metrics *metrics.Metrics
	Hub     *Hub
	Feed    *Feed
	Logger  *slog.Logger
}

// Server represents the status HTTP server.
type Server struct {
	config Config
	router chi.Router
	start  time.Time
	logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		router: chi.NewRouter(),
		start:  time.Now(),
		logger: log.Or(config.Logger),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	r := s.router
	r.Use(log.RequestLogger(s.logger))
	if s.config.Metrics != nil {
		r.Use(metrics.RequestMiddleware(s.config.Metrics))
		r.Method(http.MethodGet, "/metrics", s.config.Metrics.Handler())
	}

	r.Get("/api/health", s.handleHealth)

	if s.config.Store != nil {
		r.Route("/api/sessions", api.NewSessionHandler(s.config.Store).Routes)
	}

	if s.config.Hub != nil {
		r.Get("/api/snapshot", s.handleSnapshot)
		r.Method(http.MethodGet, "/api/ws", s.config.Hub)
	}

	if s.config.Feed != nil {
		r.Method(http.MethodGet, "/api/stream", s.config.Feed)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).Round(time.Second).String(),
	}
	if s.config.Hub != nil {
		response["clients"] = s.config.Hub.Clients()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleSnapshot returns the latest published frame snapshot.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	latest := s.config.Hub.Latest()
	if latest == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(latest)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("status server starting", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.config.Hub != nil {
		s.config.Hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Info("status server stopped")
	return nil
}
