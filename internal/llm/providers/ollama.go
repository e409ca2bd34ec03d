// File path: internal/llm/providers/ollama.go
package providers

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/AbhavBhanot/Bhagavad-Gita-Summarization-and-Verse-Retrieval-RAG/internal/common"
)

// OllamaProvider drives a locally hosted model through the Ollama API, for
// deployments that keep summarization fully offline.
type OllamaProvider struct {
	model *ollama.LLM
	name  string
}

// NewOllamaProvider connects to the Ollama server at host using the given
// model name.
func NewOllamaProvider(host, model string) (*OllamaProvider, error) {
	if model == "" {
		model = "llama3"
	}
	llm, err := ollama.New(ollama.WithServerURL(host), ollama.WithModel(model))
	if err != nil {
		return nil, err
	}
	common.Logger().Info("llm: ollama provider configured", "host", host, "model", model)
	return &OllamaProvider{model: llm, name: model}, nil
}

func (o *OllamaProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	// Ollama chat is driven through a single flattened prompt; role
	// prefixes preserve the system/user distinction.
	var b strings.Builder
	for _, msg := range messages {
		if msg.Role == "system" {
			b.WriteString(msg.Content)
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, o.model, b.String(), llms.WithTemperature(0.7))
	if err != nil {
		common.Logger().Error("llm: ollama generation failed", "error", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}
