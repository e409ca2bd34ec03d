// File path: internal/rag/service.go
package rag

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/config"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/index"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/retriever"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/summary"
)

const (
	minQueryLength = 2
	defaultTopN    = 5
	maxTopN        = 20
)

// QueryRequest carries one retrieval query.
type QueryRequest struct {
	Query          string
	TopN           int
	IncludeSummary bool
	SourceFilter   []corpus.Source
}

// QueryResponse is the full result of one query.
type QueryResponse struct {
	Query            string            `json:"query"`
	RetrievedVerses  []retriever.Verse `json:"retrieved_verses"`
	Summary          string            `json:"summary,omitempty"`
	TotalResults     int               `json:"total_results"`
	ProcessingTimeMs float64           `json:"processing_time_ms"`
}

// SourceInfo describes one corpus source for the sources summary.
type SourceInfo struct {
	Name        string        `json:"name"`
	Code        corpus.Source `json:"code"`
	TotalVerses int           `json:"total_verses"`
	Chapters    int           `json:"chapters"`
	Description string        `json:"description"`
}

// SourcesResponse summarizes all available sources.
type SourcesResponse struct {
	Sources     []SourceInfo `json:"sources"`
	TotalVerses int          `json:"total_verses"`
}

// TranslationResult is the outcome of a collaborator translation.
type TranslationResult struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	TargetLanguage string `json:"target_language"`
	LanguageName   string `json:"language_name"`
}

// Service is the immutable handle produced by the initialization phase. The
// canonical corpus and both indexes are built exactly once and read-only
// afterwards; any number of queries may run concurrently against it without
// locking.
type Service struct {
	retr     *retriever.Retriever
	composer *summary.Composer
	provider llm.Provider

	blockedTerms        []string
	collaboratorTimeout time.Duration
	sources             []SourceInfo
	totalVerses         int
}

// New runs the startup phase: load raw tables, normalize the corpus, and
// fit both indexes. Failure aborts initialization; the error is meant for
// the operator.
func New(cfg config.Config, provider llm.Provider) (*Service, error) {
	logger := common.Logger()
	started := time.Now()

	tables, err := corpus.LoadDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	rows, err := corpus.Normalize(tables)
	if err != nil {
		return nil, err
	}
	precise, semantic, err := index.BuildDual(rows)
	if err != nil {
		return nil, err
	}

	retrCfg := retriever.Config{
		PreciseWeight:  cfg.Retrieval.PreciseWeight,
		SemanticWeight: cfg.Retrieval.SemanticWeight,
		ScoreFloor:     cfg.Retrieval.ScoreFloor,
		Expansions:     cfg.Retrieval.Expansions,
	}
	svc := &Service{
		retr:                retriever.New(rows, precise, semantic, retrCfg),
		composer:            summary.NewComposer(provider, cfg.CollaboratorTimeout),
		provider:            provider,
		blockedTerms:        cfg.BlockedTerms,
		collaboratorTimeout: cfg.CollaboratorTimeout,
	}
	svc.sources, svc.totalVerses = summarizeSources(rows)

	logger.Info("rag: service initialized",
		"verses", len(rows),
		"elapsed", time.Since(started))
	return svc, nil
}

// Query validates the request, runs hybrid retrieval, assembles verses, and
// composes the summary.
func (s *Service) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	started := time.Now()

	trimmed := strings.TrimSpace(req.Query)
	if len(trimmed) < minQueryLength {
		return nil, fmt.Errorf("%w: query must be at least %d characters", ErrInvalidQuery, minQueryLength)
	}
	lowered := strings.ToLower(trimmed)
	for _, term := range s.blockedTerms {
		if strings.Contains(lowered, term) {
			return nil, fmt.Errorf("%w: query contains disallowed content", ErrInvalidQuery)
		}
	}

	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	var filter map[corpus.Source]struct{}
	if len(req.SourceFilter) > 0 {
		filter = make(map[corpus.Source]struct{}, len(req.SourceFilter))
		for _, source := range req.SourceFilter {
			filter[source] = struct{}{}
		}
	}

	matches := s.retr.Retrieve(trimmed, topN, filter)
	verses := make([]retriever.Verse, 0, len(matches))
	for _, m := range matches {
		verses = append(verses, retriever.AssembleVerse(s.retr.Row(m.Row), m.Score))
	}

	resp := &QueryResponse{
		Query:           req.Query,
		RetrievedVerses: verses,
		TotalResults:    len(verses),
	}
	if req.IncludeSummary {
		resp.Summary = s.composer.Compose(ctx, trimmed, verses)
	}
	resp.ProcessingTimeMs = math.Round(float64(time.Since(started).Microseconds())/10) / 100
	return resp, nil
}

// Sources reports per-source verse counts and descriptions.
func (s *Service) Sources() SourcesResponse {
	out := make([]SourceInfo, len(s.sources))
	copy(out, s.sources)
	return SourcesResponse{Sources: out, TotalVerses: s.totalVerses}
}

// Translate sends text to the collaborator for translation into the target
// language. Unsupported codes are rejected up front; an absent or failing
// collaborator yields llm.ErrUnavailable.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) (*TranslationResult, error) {
	name, ok := LanguageName(targetLanguage)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, targetLanguage)
	}
	callCtx, cancel := context.WithTimeout(ctx, s.collaboratorTimeout)
	defer cancel()
	translated, err := llm.Translate(callCtx, s.provider, text, name)
	if err != nil {
		return nil, err
	}
	return &TranslationResult{
		OriginalText:   text,
		TranslatedText: translated,
		TargetLanguage: targetLanguage,
		LanguageName:   name,
	}, nil
}

// CorpusSize returns the number of canonical rows, for health reporting.
func (s *Service) CorpusSize() int {
	return s.retr.Rows()
}

func summarizeSources(rows []corpus.VerseRow) ([]SourceInfo, int) {
	counts := make(map[corpus.Source]int)
	chapters := make(map[corpus.Source]int)
	for _, row := range rows {
		counts[row.Source]++
		if row.Chapter > chapters[row.Source] {
			chapters[row.Source] = row.Chapter
		}
	}
	var infos []SourceInfo
	var total int
	for _, source := range corpus.Sources {
		count := counts[source]
		if count == 0 {
			continue
		}
		spec, _ := corpus.Spec(source)
		chapterCount := chapters[source]
		if chapterCount == 0 {
			chapterCount = spec.DefaultChapters
		}
		infos = append(infos, SourceInfo{
			Name:        spec.Name,
			Code:        source,
			TotalVerses: count,
			Chapters:    chapterCount,
			Description: spec.Description,
		})
		total += count
	}
	return infos, total
}
