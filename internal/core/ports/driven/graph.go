package driven

import (
	"context"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

// GraphService is the knowledge-graph collaborator. It is optional:
// when nil or failing, answers fall back to vector-only context.
type GraphService interface {
	// Search returns graph facts relevant to the query within one
	// session's documents.
	Search(ctx context.Context, query, sessionID string) (domain.GraphContext, error)

	// Ingest offers document text for entity/relation extraction.
	// Extraction runs asynchronously on the service side.
	Ingest(ctx context.Context, text, documentID, sessionID string) error

	// RemoveDocument detaches a document's graph node and drops
	// entities no other document mentions.
	RemoveDocument(ctx context.Context, documentID string) error

	// Close releases resources.
	Close() error
}
