package domain

import "time"

// Document represents the metadata record of an indexed document.
// The heavyweight artifacts (vectors, chunks, parent map) live in the
// artifact store; this row only carries provenance and paths.
type Document struct {
	// ID is the unique identifier assigned when the document record is
	// created. It keys all three persisted index artifacts.
	ID string

	// SessionID links to the Session (collection) this document
	// belongs to.
	SessionID string

	// Filename is the original uploaded filename.
	Filename string

	// VisionModel is the vision backend used to describe extracted
	// images during indexing.
	VisionModel string

	// ChartDir is the directory holding extracted chart/image files.
	ChartDir string

	// ChartDescriptions maps image filename to the vision model's
	// description, recorded at index time.
	ChartDescriptions map[string]string

	// IndexedAt is when indexing completed.
	IndexedAt time.Time
}

// Session is a logical grouping of documents queried together, also
// known as a collection.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// Name is the human-readable session name, derived from the
	// filenames supplied at creation.
	Name string

	// CreatedAt is when the session was created.
	CreatedAt time.Time
}

// QueryRecord is one question/answer exchange stored in the session
// history.
type QueryRecord struct {
	// ID is the unique record identifier.
	ID string

	// SessionID links to the owning session.
	SessionID string

	// Question is the raw user question.
	Question string

	// Answer is the generated answer text.
	Answer string

	// Sources are the retrieval hits the answer was grounded on.
	Sources []SourceRef

	// AskedAt is when the question was asked.
	AskedAt time.Time
}

// SourceRef is a lightweight citation of a retrieval hit.
type SourceRef struct {
	Source string `json:"source"`
	Page   int    `json:"page"`
	Text   string `json:"text"`
}
