// File path: internal/retriever/retriever_test.go
package retriever

import (
	"reflect"
	"testing"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/index"
)

func gitaRow(search, semantic string) corpus.VerseRow {
	return corpus.VerseRow{Source: corpus.SourceGita, SearchText: search, SemanticText: semantic}
}

func pysRow(search, semantic string) corpus.VerseRow {
	return corpus.VerseRow{Source: corpus.SourcePYS, SearchText: search, SemanticText: semantic}
}

func buildRetriever(t *testing.T, rows []corpus.VerseRow) *Retriever {
	t.Helper()
	precise, semantic, err := index.BuildDual(rows)
	if err != nil {
		t.Fatalf("building indexes: %v", err)
	}
	return New(rows, precise, semantic, DefaultConfig())
}

func mixedCorpus() []corpus.VerseRow {
	return []corpus.VerseRow{
		gitaRow(
			"control the restless mind through steady practice",
			"control the restless mind through steady practice mental discipline",
		),
		gitaRow(
			"perform prescribed duty without attachment to results",
			"perform prescribed duty without attachment to results selfless action",
		),
		pysRow(
			"stilling the fluctuations of consciousness",
			"stilling the fluctuations of consciousness restraint mind",
		),
		gitaRow(
			"meditation brings stillness and inner peace",
			"meditation brings stillness and inner peace dhyana concentration",
		),
	}
}

func TestExpandQuery(t *testing.T) {
	r := buildRetriever(t, mixedCorpus())
	got := r.ExpandQuery("  How to control the MIND?  ")
	want := "how to control the mind mental consciousness thought?"
	if got != want {
		t.Fatalf("expanded query = %q, want %q", got, want)
	}
	if got := r.ExpandQuery("attachment"); got != "attachment" {
		t.Fatalf("query without domain terms should pass through, got %q", got)
	}
}

func TestExpandQueryDoesNotReexpandExpansions(t *testing.T) {
	r := buildRetriever(t, mixedCorpus())

	// "mindfulness" inside the meditation expansion must survive the
	// "mind" entry untouched
	got := r.ExpandQuery("meditation")
	want := "meditation dhyana mindfulness concentration"
	if got != want {
		t.Fatalf("expanded query = %q, want %q", got, want)
	}

	got = r.ExpandQuery("mind and meditation")
	want = "mind mental consciousness thought and meditation dhyana mindfulness concentration"
	if got != want {
		t.Fatalf("expanded query = %q, want %q", got, want)
	}
}

func TestRetrieveRankedAndCapped(t *testing.T) {
	r := buildRetriever(t, mixedCorpus())
	matches := r.Retrieve("How to control the mind?", 2, nil)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if len(matches) > 2 {
		t.Fatalf("topN=2 but got %d matches", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("matches not sorted descending: %v", matches)
		}
	}
	if matches[0].Row != 0 {
		t.Fatalf("expected the mind-control verse first, got row %d", matches[0].Row)
	}
}

func TestRetrieveScoreFloor(t *testing.T) {
	r := buildRetriever(t, mixedCorpus())
	if matches := r.Retrieve("completely unrelated gibberish zxqv", 5, nil); len(matches) != 0 {
		t.Fatalf("expected no matches below the score floor, got %v", matches)
	}
}

func TestRetrieveSourceFilter(t *testing.T) {
	r := buildRetriever(t, mixedCorpus())
	only := map[corpus.Source]struct{}{corpus.SourcePYS: {}}
	matches := r.Retrieve("stilling the mind", 5, only)
	if len(matches) == 0 {
		t.Fatal("expected a PYS match")
	}
	for _, m := range matches {
		if r.Row(m.Row).Source != corpus.SourcePYS {
			t.Fatalf("filter leaked a %s row", r.Row(m.Row).Source)
		}
	}
}

func TestRetrieveFilterWithoutMatchingSource(t *testing.T) {
	rows := []corpus.VerseRow{
		gitaRow("perform prescribed duty", "perform prescribed duty action"),
		gitaRow("control the restless mind", "control the restless mind discipline"),
	}
	r := buildRetriever(t, rows)
	only := map[corpus.Source]struct{}{corpus.SourcePYS: {}}
	matches := r.Retrieve("duty", 5, only)
	if matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty result, got %v", matches)
	}
}

func TestRetrieveTiesKeepCorpusOrder(t *testing.T) {
	rows := []corpus.VerseRow{
		gitaRow("surrender unto the divine will", "surrender unto the divine will devotion"),
		gitaRow("surrender unto the divine will", "surrender unto the divine will devotion"),
		gitaRow("surrender unto the divine will", "surrender unto the divine will devotion"),
		pysRow("stilling the fluctuations of consciousness", "stilling the fluctuations of consciousness restraint"),
	}
	r := buildRetriever(t, rows)
	matches := r.Retrieve("surrender divine", 3, nil)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Row != i {
			t.Fatalf("tied scores must keep corpus order, got rows %v", matches)
		}
	}
}

func TestRetrieveDeterministic(t *testing.T) {
	r := buildRetriever(t, mixedCorpus())
	first := r.Retrieve("karma and duty", 5, nil)
	second := r.Retrieve("karma and duty", 5, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated retrieval diverged:\n%v\n%v", first, second)
	}
}
