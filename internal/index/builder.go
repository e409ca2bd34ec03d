// File path: internal/index/builder.go
package index

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
)

// ErrCorpusEmpty indicates that no usable rows were available to index.
// It is fatal: initialization must abort when it is returned.
var ErrCorpusEmpty = errors.New("index: corpus has no rows")

// Index is an immutable corpus-wide structure mapping each row, by its
// stable position in the canonical corpus, to an L2-normalized sparse
// weighted-term vector, together with the fitted vocabulary needed to
// project query strings into the same space.
type Index struct {
	vec     *vectorizer
	vectors []Vector
}

// Fit builds an index over the given per-row texts.
func Fit(texts []string, opts Options) (*Index, error) {
	if len(texts) == 0 {
		return nil, ErrCorpusEmpty
	}
	v := fitVectorizer(texts, opts)
	vectors := make([]Vector, len(texts))
	for i, text := range texts {
		vectors[i] = v.transform(text)
	}
	return &Index{vec: v, vectors: vectors}, nil
}

// Transform projects a query string into the index's vector space.
func (ix *Index) Transform(query string) Vector {
	return ix.vec.transform(query)
}

// Scores computes the dot product of a query vector against every row
// vector. Both sides are L2-normalized, so this is cosine similarity.
func (ix *Index) Scores(query Vector) []float64 {
	scores := make([]float64, len(ix.vectors))
	if len(query) == 0 {
		return scores
	}
	for i, row := range ix.vectors {
		var dot float64
		for idx, qw := range query {
			dot += qw * row[idx]
		}
		scores[i] = dot
	}
	return scores
}

// Rows returns the number of indexed corpus rows.
func (ix *Index) Rows() int {
	return len(ix.vectors)
}

// VocabularySize returns the number of fitted terms.
func (ix *Index) VocabularySize() int {
	return len(ix.vec.vocab)
}

// PreciseOptions is the weighting configuration for the precise index:
// 1-2 gram matching over primary translation text, tuned for exact-phrase
// recall.
func PreciseOptions() Options {
	return Options{NgramMin: 1, NgramMax: 2, MaxFeatures: 8000, MaxDF: 0.9}
}

// SemanticOptions is the weighting configuration for the semantic index:
// 1-3 grams over concept-enriched text with sublinear term frequency, tuned
// for broader conceptual recall.
func SemanticOptions() Options {
	return Options{NgramMin: 1, NgramMax: 3, MaxFeatures: 12000, MaxDF: 0.85, SublinearTF: true}
}

// BuildDual fits the precise and semantic indexes over the canonical
// corpus. The two fits are independent, so they run concurrently.
func BuildDual(rows []corpus.VerseRow) (*Index, *Index, error) {
	if len(rows) == 0 {
		return nil, nil, ErrCorpusEmpty
	}
	logger := common.Logger()
	preciseTexts := make([]string, len(rows))
	semanticTexts := make([]string, len(rows))
	for i, row := range rows {
		preciseTexts[i] = row.SearchText
		semanticTexts[i] = row.SemanticText
	}

	var precise, semantic *Index
	var group errgroup.Group
	group.Go(func() error {
		var err error
		precise, err = Fit(preciseTexts, PreciseOptions())
		return err
	})
	group.Go(func() error {
		var err error
		semantic, err = Fit(semanticTexts, SemanticOptions())
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	logger.Info("index: dual indexes built",
		"rows", len(rows),
		"precise_vocab", precise.VocabularySize(),
		"semantic_vocab", semantic.VocabularySize())
	return precise, semantic, nil
}
