// Package ops serves the operational HTTP surface: health and metrics.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds configuration for the ops router
type Config struct {
	Store    Pinger
	Gatherer prometheus.Gatherer

	// Now is used for the health timestamp, defaults to time.Now
	Now func() time.Time
}

// NewRouter builds the ops router
func NewRouter(cfg *Config) (http.Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}

	if cfg.Gatherer == nil {
		return nil, errors.New("gatherer cannot be nil")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		status, code := "ok", http.StatusOK
		body := map[string]any{"timestamp": now().UnixMilli()}

		if err := cfg.Store.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Health check failed")
			status, code = "unavailable", http.StatusServiceUnavailable
			body["error"] = err.Error()
		}
		body["status"] = status

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(body)
	})

	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	return r, nil
}
