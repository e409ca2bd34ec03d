// File path: internal/api/query_handler.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/rag"
)

const (
	maxQueryLength = 500
	maxTopN        = 20
)

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	if s.service == nil {
		writeError(w, http.StatusServiceUnavailable, rag.ErrNotInitialized)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: query is required", rag.ErrInvalidQuery))
		return
	}
	if len(req.Query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: query exceeds %d characters", rag.ErrInvalidQuery, maxQueryLength))
		return
	}
	if req.TopN < 0 || req.TopN > maxTopN {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: top_n must be between 1 and %d", rag.ErrInvalidQuery, maxTopN))
		return
	}

	filter, err := parseSources(req.SourceFilter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	includeSummary := true
	if req.IncludeSummary != nil {
		includeSummary = *req.IncludeSummary
	}

	logger.Info("api: query request", "query", req.Query, "top_n", req.TopN)
	started := time.Now()
	resp, err := s.service.Query(r.Context(), rag.QueryRequest{
		Query:          req.Query,
		TopN:           req.TopN,
		IncludeSummary: includeSummary,
		SourceFilter:   filter,
	})
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	s.recordQuery(req.Query, resp.TotalResults, time.Since(started))
	writeJSON(w, http.StatusOK, resp)
}

// recordQuery logs telemetry best-effort; failures never affect responses.
func (s *Server) recordQuery(query string, results int, duration time.Duration) {
	if s.telemetry == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.telemetry.Record(ctx, query, results, duration); err != nil {
		common.Logger().Warn("api: telemetry record failed", "error", err)
	}
}

func parseSources(values []string) ([]corpus.Source, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]corpus.Source, 0, len(values))
	for _, value := range values {
		source, ok := corpus.ParseSource(value)
		if !ok {
			return nil, fmt.Errorf("%w: unknown source %q", rag.ErrInvalidQuery, value)
		}
		out = append(out, source)
	}
	return out, nil
}
