package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDocumentTooLarge indicates a document exceeds the configured
	// size ceiling. It is raised before chunking and must be treated as
	// a per-document failure, never a system failure.
	ErrDocumentTooLarge = errors.New("document too large to process safely")

	// ErrArtifactMissing indicates one of the three persisted index
	// artifacts (vectors, child chunks, parent map) is absent at load
	// time. The affected document is excluded from retrieval.
	ErrArtifactMissing = errors.New("index artifacts missing")

	// ErrIndexEmpty indicates a search was issued against a document
	// whose index holds no vectors.
	ErrIndexEmpty = errors.New("vector index is empty")

	// ErrDimensionMismatch indicates a vector's dimension does not
	// match the index configuration.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUnsupportedProvider indicates an unknown AI provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrLLMUnavailable indicates the LLM client is not configured.
	ErrLLMUnavailable = errors.New("LLM client unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Indexing and retrieval are impossible without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
