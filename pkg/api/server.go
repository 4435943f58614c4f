// Package api serves the bindb decoder and database store over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP routes. /metrics is served from gatherer when it is
// not nil.
func (s *Server) Router(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Unprotected for scraping
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(apiKeyMiddleware(s.config.APIKey))
		}

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Post("/decode", s.metrics.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))

		if s.store == nil {
			return
		}
		r.Post("/databases", s.metrics.InstrumentHandler("POST", "/api/v1/databases", s.handleStore))
		r.Get("/databases", s.metrics.InstrumentHandler("GET", "/api/v1/databases", s.handleList))
		r.Get("/databases/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/databases/{id}", s.handleGet))
		r.Get("/databases/{id}/values/{key}", s.metrics.InstrumentHandler("GET", "/api/v1/databases/{id}/values/{key}", s.handleGetValue))
		r.Delete("/databases/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/databases/{id}", s.handleDelete))
	})

	return r
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, store DatabaseStore, config ServerConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(reg)

	server := NewServer(store, config, metrics, logger)
	if store != nil {
		server.refreshStoreGauge()
	}

	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           server.Router(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting bindb api", "addr", config.Addr, "auth", config.APIKey != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down bindb api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
