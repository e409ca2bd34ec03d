// File path: internal/api/translate_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/rag"
)

const maxTranslationLength = 1000

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if s.service == nil {
		writeError(w, http.StatusServiceUnavailable, rag.ErrNotInitialized)
		return
	}
	var req translationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}
	if len(req.Text) > maxTranslationLength {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text exceeds %d characters", maxTranslationLength))
		return
	}
	common.Logger().Info("api: translate request", "target", req.TargetLanguage, "chars", len(req.Text))
	result, err := s.service.Translate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"languages": rag.SupportedLanguages(),
	})
}
