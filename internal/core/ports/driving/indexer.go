package driving

import "context"

// IndexRequest describes one document to index into a session.
type IndexRequest struct {
	// SessionID is the collection the document joins.
	SessionID string

	// FilePath is the uploaded file location on disk.
	FilePath string

	// VisionModel names the vision backend used for image description.
	VisionModel string
}

// IndexerService runs the per-document indexing pipeline:
// parse -> describe visuals -> transcribe audio -> chunk -> embed ->
// index -> persist. Steps within one document are strictly sequential;
// different documents may be indexed concurrently.
type IndexerService interface {
	// IndexDocument processes one file and returns the new document ID.
	// A failure affects only this document, never its session siblings.
	IndexDocument(ctx context.Context, req IndexRequest) (string, error)
}
