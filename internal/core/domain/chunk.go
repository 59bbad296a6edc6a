package domain

// Chunk represents a unit of indexed text at either the parent or the
// child level. Chunks are immutable after creation: the chunker builds
// them once and retrieval only reads them.
type Chunk struct {
	// ID is the unique identifier for the chunk (UUID).
	ID string `json:"chunk_id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// Source is the originating document identifier (filename).
	Source string `json:"source"`

	// Page is the 0-indexed page or slide number. Content that appears
	// before the first page marker is attributed to page 0.
	Page int `json:"page"`

	// ParentID links a child chunk to its parent. Empty for parent
	// chunks and for children that could not be attached to a parent.
	ParentID string `json:"parent_id,omitempty"`

	// IsParent is true only for parent-level chunks.
	IsParent bool `json:"is_parent"`

	// Metadata contains chunk-specific key-value pairs, such as the
	// ordinal index of a parent within its page.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ParentMap maps a parent chunk ID to the parent chunk itself. It is
// scoped to a single document, built once at chunk time and read at
// retrieval time to resolve a child hit back to its parent.
type ParentMap map[string]Chunk

// RetrievalResult pairs a chunk with its embedding-space L2 distance
// from the query. Lower distance means more relevant.
type RetrievalResult struct {
	Chunk    Chunk
	Distance float32
}
