// File path: internal/llm/llm.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/llm/providers"
)

// Message and Provider re-export the provider contracts for consumers.
type Message = providers.Message

type Provider = providers.Provider

// ErrUnavailable indicates the collaborator is missing, timed out, or
// returned nothing useful. Callers recover locally with the deterministic
// fallback; this error is never surfaced to API clients.
var ErrUnavailable = errors.New("llm: collaborator unavailable")

// NewProvider selects a collaborator from the environment: an OpenAI
// client when OPENAI_API_KEY is set, an Ollama client when OLLAMA_HOST is
// set, otherwise nil. A nil provider is a valid configuration; the core
// functions fully on its deterministic fallback.
func NewProvider() Provider {
	logger := common.Logger()
	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		logger.Info("llm: OpenAI provider selected")
		return providers.NewOpenAIProvider(apiKey)
	}
	if host := strings.TrimSpace(os.Getenv("OLLAMA_HOST")); host != "" {
		provider, err := providers.NewOllamaProvider(host, strings.TrimSpace(os.Getenv("OLLAMA_MODEL")))
		if err != nil {
			logger.Warn("llm: ollama provider unavailable", "error", err)
			return nil
		}
		logger.Info("llm: ollama provider selected")
		return provider
	}
	logger.Info("llm: no collaborator configured; deterministic summaries only")
	return nil
}

// Summarize asks the collaborator for a short analysis of the query in
// light of the given verse excerpts.
func Summarize(ctx context.Context, provider Provider, query string, excerpts []string) (string, error) {
	if provider == nil {
		return "", ErrUnavailable
	}
	prompt := fmt.Sprintf(
		"Summarize the spiritual teachings about '%s' from these ancient verses: %s",
		query, strings.Join(excerpts, " "))
	out, err := provider.Chat(ctx, []Message{
		{Role: "system", Content: "You are a scholar of the Bhagavad Gita and the Patanjali Yoga Sutras. Answer in a few concise sentences."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrUnavailable
	}
	return out, nil
}

// Translate asks the collaborator to translate English text into the named
// target language.
func Translate(ctx context.Context, provider Provider, text, languageName string) (string, error) {
	if provider == nil {
		return "", ErrUnavailable
	}
	prompt := fmt.Sprintf("translate English to %s: %s", languageName, text)
	out, err := provider.Chat(ctx, []Message{
		{Role: "system", Content: "You are a translator. Reply with the translated text only."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrUnavailable
	}
	return out, nil
}
