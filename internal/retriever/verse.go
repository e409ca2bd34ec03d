// File path: internal/retriever/verse.go
package retriever

import (
	"math"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
)

// Verse is the result entity assembled per query. It is immutable once
// constructed and owned by the response.
type Verse struct {
	Chapter         *int          `json:"chapter"`
	VerseNumber     *int          `json:"verse"`
	Text            string        `json:"text"`
	Sanskrit        string        `json:"sanskrit,omitempty"`
	Translation     string        `json:"translation"`
	Source          corpus.Source `json:"source"`
	SimilarityScore float64       `json:"similarity_score"`
	Concept         string        `json:"concept,omitempty"`
	Keyword         string        `json:"keyword,omitempty"`
}

// AssembleVerse maps a canonical row and its fused score into a Verse.
// Translation resolution re-applies the per-source priority list here so
// assembly does not depend on which column survived normalization; numeric
// fields are parsed permissively and left absent on failure; the score is
// clamped to [0,1] and rounded to four decimal places.
func AssembleVerse(row corpus.VerseRow, score float64) Verse {
	verse := Verse{
		Source:          row.Source,
		Sanskrit:        row.Sanskrit,
		Concept:         row.Concept,
		Keyword:         row.Keyword,
		SimilarityScore: roundScore(score),
	}

	translation := row.Primary
	if spec, ok := corpus.Spec(row.Source); ok {
		if resolved := corpus.SelectTranslation(spec, row.Translations); resolved != "" {
			translation = resolved
		}
	}
	if translation == "" {
		translation = row.SearchText
	}
	verse.Translation = translation
	verse.Text = translation

	if n, ok := corpus.ParseVerseNumber(row.ChapterRaw); ok {
		verse.Chapter = &n
	}
	if n, ok := corpus.ParseVerseNumber(row.VerseRaw); ok {
		verse.VerseNumber = &n
	}
	return verse
}

func roundScore(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return math.Round(score*10000) / 10000
}
