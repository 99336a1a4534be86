// Package httpapi exposes the building health service over HTTP: the report
// endpoint, address resolution, reviews, and the operational surface.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vimldn/vimnyc8/internal/aggregate"
	"github.com/vimldn/vimnyc8/internal/observability"
	"github.com/vimldn/vimnyc8/internal/review"
)

// Server serves the public API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the router. reviews may be nil, in which case the review
// endpoints report the store as unavailable.
func NewServer(addr string, svc *aggregate.Service, reviews *review.Store, logger *slog.Logger, metrics *observability.Metrics) *Server {
	h := &handlers{svc: svc, reviews: reviews, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics(metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/building", h.handleBuilding)
		r.Get("/lookup", h.handleLookup)
		r.Get("/autocomplete", h.handleAutocomplete)
		r.Get("/reviews", h.handleListReviews)
		r.Post("/reviews", h.handleCreateReview)
		r.Post("/reviews/helpful", h.handleMarkHelpful)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: r,
			// The report fan-out can legitimately take a while; write
			// timeout must outlast the slowest source budget.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// requestMetrics counts requests by route pattern and status class.
func requestMetrics(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metrics == nil {
				next.ServeHTTP(w, r)
				return
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		})
	}
}
