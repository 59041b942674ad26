// Package chi serves a built search artifact read-only over HTTP.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/episearch/internal/metrics"
	healthuc "github.com/kailas-cloud/episearch/internal/usecase/health"
)

// Routes served by the preview server.
const (
	PathArtifact = "/search-index.json"
	PathHealth   = "/healthz"
	PathMetrics  = "/metrics"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeArtifactUnavailable = "artifact_unavailable"
	CodeUnauthorized        = "unauthorized"
	CodeInternal            = "internal_error"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the JSON body of /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ArtifactReader returns the current artifact bytes.
type ArtifactReader interface {
	Read() ([]byte, error)
}

// Server handles the preview routes.
type Server struct {
	artifact ArtifactReader
	health   *healthuc.Service
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// NewServer creates a preview server. gatherer backs /metrics.
func NewServer(
	artifact ArtifactReader,
	health *healthuc.Service,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Server {
	return &Server{artifact: artifact, health: health, gatherer: gatherer, logger: logger}
}

// Router assembles the chi router with the standard middleware chain.
func (s *Server) Router(httpMetrics *metrics.HTTP, apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware())
	}

	r.Get(PathArtifact, s.SearchIndex)
	r.Get(PathHealth, s.HealthCheck)
	r.Get(PathMetrics, s.Metrics)
	return r
}

// SearchIndex handles GET /search-index.json. The file is re-read on every request so
// a rebuild is visible without a restart.
func (s *Server) SearchIndex(w http.ResponseWriter, r *http.Request) {
	data, err := s.artifact.Read()
	if err != nil {
		s.logger.Warn("Artifact unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, CodeArtifactUnavailable, "search index has not been built")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
