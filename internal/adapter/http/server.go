package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ForecastReader serves the latest stored forecast for a location key.
type ForecastReader interface {
	GetLatest(key string) (*domain.ForecastResult, bool)
}

// ObservationReader serves current water temperature observations.
type ObservationReader interface {
	LatestReadings(ctx context.Context) []domain.StationReading
}

// Server exposes health, readiness, metrics, and forecast HTTP endpoints.
type Server struct {
	httpServer   *http.Server
	location     domain.Location
	forecasts    ForecastReader
	observations ObservationReader
	logger       *slog.Logger
}

// NewServer creates the API server. The forecast endpoints always answer for
// the configured location.
func NewServer(
	addr string,
	location domain.Location,
	ready ReadinessChecker,
	forecasts ForecastReader,
	observations ObservationReader,
	logger *slog.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		location:     location,
		forecasts:    forecasts,
		observations: observations,
		logger:       logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/forecast", s.handleForecast)
	mux.HandleFunc("GET /api/v1/watertemp", s.handleWaterTemp)

	return s
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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleForecast returns the latest completed forecast, or 404 before the
// first run finishes.
func (s *Server) handleForecast(w http.ResponseWriter, _ *http.Request) {
	result, ok := s.forecasts.GetLatest(s.location.Key())
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "no forecast available yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleWaterTemp returns the current reading from every reporting station.
func (s *Server) handleWaterTemp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	readings := s.observations.LatestReadings(ctx)
	writeJSON(w, http.StatusOK, map[string]any{
		"stations": readings,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
