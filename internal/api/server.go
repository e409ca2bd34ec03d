// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/rag"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/telemetry"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Server routes HTTP requests to the retrieval service. It tolerates a nil
// service so that serving never races a failed or in-flight initialization:
// query endpoints answer 503 until a service is present.
type Server struct {
	router    chi.Router
	service   *rag.Service
	telemetry *telemetry.Store
}

// NewServer builds the router around an optional service handle and an
// optional telemetry store.
func NewServer(service *rag.Service, store *telemetry.Store) *Server {
	srv := &Server{
		router:    chi.NewRouter(),
		service:   service,
		telemetry: store,
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/v1/query", s.handleQuery)
	s.router.Get("/v1/sources", s.handleSources)
	s.router.Post("/v1/translate", s.handleTranslate)
	s.router.Get("/v1/languages", s.handleLanguages)
	s.router.Get("/v1/logs", s.handleLogs)
	s.router.Get("/v1/stats", s.handleStats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	verses := 0
	if s.service == nil {
		status = "initializing"
	} else {
		verses = s.service.CorpusSize()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"version": Version,
		"verses":  verses,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// errStatus maps service errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, rag.ErrInvalidQuery), errors.Is(err, rag.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, rag.ErrNotInitialized), errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
