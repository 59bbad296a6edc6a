package driven

import (
	"context"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

// LLMClient provides prompt completion for answer generation and
// query rewriting.
//
// Generate never returns a Go error for provider failures: the
// provider's error message travels in the response's Error field so a
// failed generation still yields a well-formed result the caller can
// render.
//
// Implementations may include:
//   - Groq (llama models, OpenAI-compatible API)
//   - OpenAI (GPT models)
//   - Ollama (local models)
type LLMClient interface {
	// Generate produces a completion for the prompt. systemPrompt may
	// be empty.
	Generate(ctx context.Context, prompt, systemPrompt string) domain.LLMResponse

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
