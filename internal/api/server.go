// Package api exposes the analysis engine over HTTP. Endpoints accept JSON
// tables and return JSON results; statistical failures map to error kinds
// and from there to status codes.
package api

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/sartorproj/goanalytics"
	"github.com/sartorproj/goanalytics/analysis"
	"github.com/sartorproj/goanalytics/internal/insight"
)

// Server routes analysis requests to the engine.
type Server struct {
	engine  *goanalytics.Engine
	insight *insight.Client
	log     *slog.Logger
}

// New returns a server around the given engine. The insight client may be
// disabled; handlers then fall back to templated summaries.
func New(engine *goanalytics.Engine, insightClient *insight.Client, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{engine: engine, insight: insightClient, log: log}
}

// Router builds the chi handler with request IDs, panic recovery, request
// logging, and CORS for the given origins.
func (s *Server) Router(origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", s.handleIndex)
	r.Post("/calculate_correlation", s.handleCorrelation)
	r.Post("/run_linear_regression", s.handleRegression)
	r.Post("/run_random_forest", s.handleForest)
	r.Post("/time_series_predict", s.handlePredict)
	return r
}

// requestID tags each request with a UUID so log lines can be correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", ww.Header().Get("X-Request-ID"),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "analytics",
	})
}

// writeJSON encodes v as the response body. NaN values must be stripped by
// the caller first; encoding/json rejects them.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps analysis error kinds to HTTP status codes. Fit failures
// are the caller's data being unmodelable, not a malformed request.
func statusFor(err error) int {
	switch analysis.KindOf(err) {
	case analysis.KindMissingColumn,
		analysis.KindInsufficientData,
		analysis.KindUnderdetermined,
		analysis.KindInvalidParameter:
		return http.StatusBadRequest
	case analysis.KindModelFitFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("unhandled analysis error", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// nullableFloat converts NaN to a JSON null so undefined correlations
// survive encoding.
func nullableFloat(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

// finiteFloat converts NaN and infinities to JSON null.
func finiteFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
