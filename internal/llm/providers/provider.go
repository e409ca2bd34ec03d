// File path: internal/llm/providers/provider.go
package providers

import "context"

// Message is one turn of a chat exchange with a generative model.
type Message struct {
	Role    string
	Content string
}

// Provider is the narrow contract the core consumes from a generative-text
// collaborator. Implementations may fail or time out; callers bound every
// call with a context deadline and treat failure as "collaborator
// unavailable", never as a fatal query error.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}
