// File path: internal/api/sources_handler.go
package api

import (
	"net/http"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/rag"
)

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	if s.service == nil {
		writeError(w, http.StatusServiceUnavailable, rag.ErrNotInitialized)
		return
	}
	writeJSON(w, http.StatusOK, s.service.Sources())
}
