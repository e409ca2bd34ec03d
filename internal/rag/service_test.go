// File path: internal/rag/service_test.go
package rag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/config"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/corpus"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm/providers"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Chat(ctx context.Context, messages []providers.Message) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func fixtureDataDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeCSV(t, filepath.Join(root, "BWG data"), "Bhagwad_Gita_Verses_English.csv",
		"Chapter,Verse,Sanskrit ,Swami Adidevananda,Swami Gambirananda,Swami Sivananda\n"+
			"2.0,47.0,san one,\"You have a right to action alone, never to its fruits.\",alt one,sivananda one\n"+
			"2.0,48.0,san two,Perform your duty with an even mind abandoning attachment.,alt two,sivananda two\n"+
			"6.0,6.0,san three,The restless mind must be controlled through steady practice.,alt three,sivananda three\n")
	writeCSV(t, filepath.Join(root, "BWG data"), "Bhagwad_Gita_Verses_Concepts.csv",
		"Chapter,Verse,Concept,Keyword\n2.0,47.0,Karma Yoga,duty\n6.0,6.0,Mind Control,mind\n")
	writeCSV(t, filepath.Join(root, "PYS Data"), "Patanjali_Yoga_Sutras_Verses_English.csv",
		"Chapter,Verse,Sanskrit,English\n"+
			"1.0,2.0,san pys,Yoga is the stilling of the fluctuations of the mind.\n"+
			"1.0,3.0,san pys two,Then the seer abides in its own true nature.\n")
	return root
}

func newTestService(t *testing.T, provider llm.Provider) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = fixtureDataDir(t)
	svc, err := New(cfg, provider)
	if err != nil {
		t.Fatalf("service init: %v", err)
	}
	return svc
}

func TestServiceQuery(t *testing.T) {
	svc := newTestService(t, nil)
	resp, err := svc.Query(context.Background(), QueryRequest{
		Query:          "How to control the mind?",
		TopN:           3,
		IncludeSummary: true,
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if resp.TotalResults != len(resp.RetrievedVerses) {
		t.Fatalf("total_results %d != %d verses", resp.TotalResults, len(resp.RetrievedVerses))
	}
	if resp.TotalResults == 0 {
		t.Fatal("expected matches for a mind-control query")
	}
	top := resp.RetrievedVerses[0]
	if top.Chapter == nil || *top.Chapter != 6 || top.VerseNumber == nil || *top.VerseNumber != 6 {
		t.Fatalf("expected Gita 6.6 first, got %+v", top)
	}
	if top.SimilarityScore <= 0 || top.SimilarityScore > 1 {
		t.Fatalf("similarity score out of range: %v", top.SimilarityScore)
	}
	if resp.Summary == "" {
		t.Fatal("expected a summary when include_summary is set")
	}
	if resp.ProcessingTimeMs < 0 {
		t.Fatalf("negative processing time %v", resp.ProcessingTimeMs)
	}
}

func TestServiceQueryWithoutSummary(t *testing.T) {
	svc := newTestService(t, nil)
	resp, err := svc.Query(context.Background(), QueryRequest{Query: "duty and action"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if resp.Summary != "" {
		t.Fatalf("summary should be omitted, got %q", resp.Summary)
	}
}

func TestServiceQueryValidation(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.Query(context.Background(), QueryRequest{Query: " a "}); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("short query: got %v, want ErrInvalidQuery", err)
	}
	if _, err := svc.Query(context.Background(), QueryRequest{Query: "how to spread hate"}); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("blocked term: got %v, want ErrInvalidQuery", err)
	}
}

func TestServiceQuerySourceFilter(t *testing.T) {
	svc := newTestService(t, nil)
	resp, err := svc.Query(context.Background(), QueryRequest{
		Query:        "stilling the mind",
		SourceFilter: []corpus.Source{corpus.SourcePYS},
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	for _, verse := range resp.RetrievedVerses {
		if verse.Source != corpus.SourcePYS {
			t.Fatalf("filter leaked source %s", verse.Source)
		}
	}
}

func TestServiceSources(t *testing.T) {
	svc := newTestService(t, nil)
	resp := svc.Sources()
	if len(resp.Sources) != 2 {
		t.Fatalf("expected both sources, got %d", len(resp.Sources))
	}
	if resp.Sources[0].Code != corpus.SourceGita || resp.Sources[0].TotalVerses != 3 {
		t.Fatalf("unexpected first source: %+v", resp.Sources[0])
	}
	if resp.Sources[1].Code != corpus.SourcePYS || resp.Sources[1].TotalVerses != 2 {
		t.Fatalf("unexpected second source: %+v", resp.Sources[1])
	}
	if resp.TotalVerses != 5 {
		t.Fatalf("total verses = %d, want 5", resp.TotalVerses)
	}
}

func TestServiceTranslate(t *testing.T) {
	svc := newTestService(t, &fakeProvider{reply: "नमस्ते"})
	result, err := svc.Translate(context.Background(), "hello", "hi")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if result.TranslatedText != "नमस्ते" || result.LanguageName != "Hindi" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestServiceTranslateUnsupportedLanguage(t *testing.T) {
	svc := newTestService(t, &fakeProvider{reply: "anything"})
	if _, err := svc.Translate(context.Background(), "hello", "xx"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("got %v, want ErrUnsupportedLanguage", err)
	}
}

func TestServiceTranslateWithoutCollaborator(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.Translate(context.Background(), "hello", "fr"); !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("got %v, want llm.ErrUnavailable", err)
	}
}

func TestServiceInitFailsOnMissingData(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	if _, err := New(cfg, nil); !errors.Is(err, corpus.ErrDataLoad) {
		t.Fatalf("got %v, want corpus.ErrDataLoad", err)
	}
}

func TestServiceQueryDeterministic(t *testing.T) {
	svc := newTestService(t, nil)
	req := QueryRequest{Query: "duty without attachment", TopN: 5}
	first, err := svc.Query(context.Background(), req)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	second, err := svc.Query(context.Background(), req)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(first.RetrievedVerses) != len(second.RetrievedVerses) {
		t.Fatal("repeated queries returned different result counts")
	}
	for i := range first.RetrievedVerses {
		a, b := first.RetrievedVerses[i], second.RetrievedVerses[i]
		if a.SimilarityScore != b.SimilarityScore || a.Translation != b.Translation {
			t.Fatalf("repeated queries diverged at %d: %+v vs %+v", i, a, b)
		}
	}
	if first.Query != req.Query {
		t.Fatalf("response echoes %q, want %q", first.Query, req.Query)
	}
}
