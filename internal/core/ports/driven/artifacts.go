package driven

import "github.com/meridian-labs/docsage/internal/core/domain"

// IndexArtifacts are the three persisted pieces of one document's
// vector index state. They are saved and loaded together, keyed by the
// document ID; loading with any piece absent is an error.
//
// Vectors[i] embeds Chunks[i]: the array order is the index-to-chunk
// mapping and must never be permuted independently.
type IndexArtifacts struct {
	// Dimension is the embedding vector size.
	Dimension int

	// Vectors are the child-chunk embeddings, in chunk order.
	Vectors [][]float32

	// Chunks are the child chunks, in embedding order.
	Chunks []domain.Chunk

	// Parents maps parent chunk ID to parent chunk.
	Parents domain.ParentMap
}

// ArtifactStore persists IndexArtifacts per document. A document's
// artifacts are written exactly once; re-processing a document writes
// under a new document ID.
type ArtifactStore interface {
	// Save writes all three artifacts for the document.
	Save(documentID string, artifacts *IndexArtifacts) error

	// Load reads all three artifacts back. Returns
	// domain.ErrArtifactMissing if any piece is absent.
	Load(documentID string) (*IndexArtifacts, error)

	// Delete removes all three artifacts. Absent pieces are not an
	// error.
	Delete(documentID string) error

	// IndexPath returns the canonical path of the document's vector
	// artifact. Used as a stable cache key.
	IndexPath(documentID string) string
}
