// Package chi exposes the RAG service over HTTP: the /query chat endpoint,
// health and stats probes, Prometheus metrics, and the static chat UI.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/homescout-ai/homescout/internal/domain"
	logpkg "github.com/homescout-ai/homescout/internal/logger"
	healthuc "github.com/homescout-ai/homescout/internal/usecase/health"
	raguc "github.com/homescout-ai/homescout/internal/usecase/rag"
	statsuc "github.com/homescout-ai/homescout/internal/usecase/stats"
)

// Server handles the HTTP API. Handlers log through the request-scoped
// logger placed in the context by the server middleware.
type Server struct {
	rag       *raguc.Service
	health    *healthuc.Service
	stats     *statsuc.Service
	staticDir string
}

// NewServer creates an HTTP API server. staticDir points at the chat UI
// files; empty disables static serving.
func NewServer(
	rag *raguc.Service,
	health *healthuc.Service,
	stats *statsuc.Service,
	staticDir string,
) *Server {
	return &Server{
		rag:       rag,
		health:    health,
		stats:     stats,
		staticDir: staticDir,
	}
}

// Routes registers all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/query", s.handleQuery)
	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if s.staticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir)))
		r.Get("/static/*", fs.ServeHTTP)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(s.staticDir, "index.html"))
		})
	}
}

// handleQuery runs the RAG pipeline. Provider outages answer HTTP 200 with
// success=false and a graceful fallback so the chat UI can render them as
// ordinary messages; only invalid input and transport faults change the
// status code.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	answer, err := s.rag.Query(r.Context(), req.Query, req.TopK)
	took := time.Since(start)

	s.health.Recorder().Observe(took, err != nil)

	if err != nil {
		s.writeQueryError(w, r, err, took)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Success:         true,
		Response:        answer.Text,
		Sources:         sourcesFromMatches(answer.Matches),
		ResponseTime:    formatSeconds(took),
		ChunksRetrieved: len(answer.Matches),
	})
}

func (s *Server) writeQueryError(w http.ResponseWriter, r *http.Request, err error, took time.Duration) {
	if errors.Is(err, domain.ErrInvalidQuery) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	logpkg.FromContext(r.Context()).Error("query failed", zap.Error(err))

	fallback := raguc.FallbackInternalAnswer
	switch {
	case errors.Is(err, domain.ErrRetrievalUnavailable):
		fallback = raguc.FallbackRetrievalAnswer
	case errors.Is(err, domain.ErrGenerationUnavailable):
		fallback = raguc.FallbackGenerationAnswer
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Success:      false,
		Response:     fallback,
		ResponseTime: formatSeconds(took),
		Error:        safeErrorMessage(err),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToDTO(report))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	info, err := s.stats.Stats(r.Context())
	if err != nil {
		logpkg.FromContext(r.Context()).Error("stats failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, statsToDTO(info))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// safeErrorMessage returns the sentinel message for known failures without
// exposing provider internals to the client.
func safeErrorMessage(err error) string {
	sentinels := []error{
		domain.ErrEmbeddingUnavailable,
		domain.ErrRetrievalUnavailable,
		domain.ErrGenerationUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
