// File path: internal/llm/llm_test.go
package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm/providers"
)

type scriptedProvider struct {
	reply  string
	err    error
	prompt string
}

func (s *scriptedProvider) Chat(ctx context.Context, messages []providers.Message) (string, error) {
	for _, m := range messages {
		if m.Role == "user" {
			s.prompt = m.Content
		}
	}
	return s.reply, s.err
}

func (s *scriptedProvider) Name() string { return "scripted" }

func TestSummarizeNilProvider(t *testing.T) {
	if _, err := Summarize(context.Background(), nil, "karma", nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestSummarizePromptAndReply(t *testing.T) {
	p := &scriptedProvider{reply: "  Selfless action frees the doer.  "}
	out, err := Summarize(context.Background(), p, "karma", []string{"excerpt one", "excerpt two"})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if out != "Selfless action frees the doer." {
		t.Fatalf("reply not trimmed: %q", out)
	}
	if !strings.Contains(p.prompt, "'karma'") || !strings.Contains(p.prompt, "excerpt one excerpt two") {
		t.Fatalf("unexpected prompt: %q", p.prompt)
	}
}

func TestSummarizeEmptyReply(t *testing.T) {
	p := &scriptedProvider{reply: "   "}
	if _, err := Summarize(context.Background(), p, "karma", nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestSummarizeProviderError(t *testing.T) {
	p := &scriptedProvider{err: errors.New("timeout")}
	if _, err := Summarize(context.Background(), p, "karma", nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestTranslatePrompt(t *testing.T) {
	p := &scriptedProvider{reply: "Bonjour"}
	out, err := Translate(context.Background(), p, "hello", "French")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if out != "Bonjour" {
		t.Fatalf("out = %q", out)
	}
	if p.prompt != "translate English to French: hello" {
		t.Fatalf("unexpected prompt: %q", p.prompt)
	}
}

func TestTranslateNilProvider(t *testing.T) {
	if _, err := Translate(context.Background(), nil, "hello", "French"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}
