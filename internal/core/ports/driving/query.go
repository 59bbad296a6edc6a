package driving

import (
	"context"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

// QueryService answers questions against a session's indexed
// documents by combining vector retrieval, knowledge-graph facts and
// LLM generation.
type QueryService interface {
	// Ask retrieves context for the question across every document in
	// the session and generates an answer. Documents whose artifacts
	// cannot be loaded are skipped, not fatal.
	Ask(ctx context.Context, sessionID, question string) (domain.Answer, error)
}
