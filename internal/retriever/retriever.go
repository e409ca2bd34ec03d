// File path: internal/retriever/retriever.go
package retriever

import (
	"sort"
	"strings"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/index"
)

const defaultTopN = 5

// Config carries the fusion weights, score floor, and domain-term expansion
// table. The expansion table is declared configuration, not a hard
// contract; membership can be overridden at startup.
type Config struct {
	PreciseWeight  float64
	SemanticWeight float64
	ScoreFloor     float64
	Expansions     map[string]string
}

// DefaultConfig returns the standard 0.6/0.4 fusion with the built-in
// spiritual-term expansion table.
func DefaultConfig() Config {
	return Config{
		PreciseWeight:  0.6,
		SemanticWeight: 0.4,
		ScoreFloor:     0.01,
		Expansions: map[string]string{
			"mind":       "mind mental consciousness thought",
			"meditation": "meditation dhyana mindfulness concentration",
			"dharma":     "dharma duty righteousness moral",
			"karma":      "karma action work deed",
			"moksha":     "moksha liberation freedom enlightenment",
			"yoga":       "yoga union practice discipline",
		},
	}
}

// Match pairs a canonical corpus row position with its fused score.
type Match struct {
	Row   int
	Score float64
}

// Retriever scores queries against the precise and semantic indexes and
// fuses the two similarity vectors into one deterministic ranking. It is
// read-only after construction and safe for concurrent use.
type Retriever struct {
	rows     []corpus.VerseRow
	precise  *index.Index
	semantic *index.Index
	cfg      Config

	// expansion terms ordered longest first, then alphabetically, so
	// matching is deterministic and a longer term is never shadowed by a
	// shorter one contained in it
	expansionTerms []string
}

// New builds a retriever over the canonical corpus and its two indexes.
func New(rows []corpus.VerseRow, precise, semantic *index.Index, cfg Config) *Retriever {
	terms := make([]string, 0, len(cfg.Expansions))
	for term := range cfg.Expansions {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return &Retriever{
		rows:           rows,
		precise:        precise,
		semantic:       semantic,
		cfg:            cfg,
		expansionTerms: terms,
	}
}

// ExpandQuery lowercases and trims the query, then substitutes each known
// domain term with its expansion. Terms are matched against the original
// query text only: one term's expansion is never re-expanded by another, so
// "meditation" yields "meditation dhyana mindfulness concentration" even
// though that text contains "mind".
func (r *Retriever) ExpandQuery(query string) string {
	original := strings.ToLower(strings.TrimSpace(query))

	type span struct {
		start, end  int
		replacement string
	}
	var spans []span
	overlaps := func(start, end int) bool {
		for _, s := range spans {
			if start < s.end && end > s.start {
				return true
			}
		}
		return false
	}
	for _, term := range r.expansionTerms {
		for from := 0; ; {
			i := strings.Index(original[from:], term)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(term)
			if !overlaps(start, end) {
				spans = append(spans, span{start, end, r.cfg.Expansions[term]})
			}
			from = end
		}
	}
	if len(spans) == 0 {
		return original
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(original[last:s.start])
		b.WriteString(s.replacement)
		last = s.end
	}
	b.WriteString(original[last:])
	return b.String()
}

// Retrieve returns up to topN (row, fused score) pairs for the query,
// ranked by fused score descending with ties broken by corpus order. Rows
// whose source is excluded by the filter, or whose fused score falls below
// the floor, are skipped. Fewer than topN qualifying rows is not an error.
func (r *Retriever) Retrieve(query string, topN int, sourceFilter map[corpus.Source]struct{}) []Match {
	if topN <= 0 {
		topN = defaultTopN
	}
	expanded := r.ExpandQuery(query)
	preciseScores := r.precise.Scores(r.precise.Transform(expanded))
	semanticScores := r.semantic.Scores(r.semantic.Transform(expanded))

	fused := make([]Match, len(r.rows))
	for i := range r.rows {
		fused[i] = Match{
			Row:   i,
			Score: r.cfg.PreciseWeight*preciseScores[i] + r.cfg.SemanticWeight*semanticScores[i],
		}
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	matches := make([]Match, 0, topN)
	for _, m := range fused {
		if len(matches) >= topN {
			break
		}
		if m.Score < r.cfg.ScoreFloor {
			// sorted descending, nothing below the floor can follow
			break
		}
		if sourceFilter != nil {
			if _, ok := sourceFilter[r.rows[m.Row].Source]; !ok {
				continue
			}
		}
		matches = append(matches, m)
	}
	common.Logger().Debug("retriever: query scored",
		"expanded", expanded, "matches", len(matches), "top_n", topN)
	return matches
}

// Row returns the canonical corpus row at a stable position.
func (r *Retriever) Row(i int) corpus.VerseRow {
	return r.rows[i]
}

// Rows returns the corpus size.
func (r *Retriever) Rows() int {
	return len(r.rows)
}
