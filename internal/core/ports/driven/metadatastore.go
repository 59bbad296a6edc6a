package driven

import (
	"context"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

// SessionStore persists sessions (collections of documents).
type SessionStore interface {
	// CreateSession creates a session named after the given filenames.
	CreateSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by ID. Returns domain.ErrNotFound
	// if absent.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// DeleteSession removes a session with its document and query
	// rows. Returns domain.ErrNotFound if absent.
	DeleteSession(ctx context.Context, sessionID string) error
}

// DocumentStore persists document metadata rows.
type DocumentStore interface {
	// AddDocument records an indexed document.
	AddDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID. Returns
	// domain.ErrNotFound if absent.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments returns all documents in a session.
	ListDocuments(ctx context.Context, sessionID string) ([]domain.Document, error)
}

// QueryStore persists question/answer history per session.
type QueryStore interface {
	// AddQuery records one exchange.
	AddQuery(ctx context.Context, record *domain.QueryRecord) error

	// ListQueries returns a session's history, oldest first.
	ListQueries(ctx context.Context, sessionID string) ([]domain.QueryRecord, error)
}
