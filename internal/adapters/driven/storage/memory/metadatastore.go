// Package memory provides in-memory metadata stores, used by tests and
// as a fallback when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
)

// Ensure MetadataStore implements the interfaces.
var (
	_ driven.SessionStore  = (*MetadataStore)(nil)
	_ driven.DocumentStore = (*MetadataStore)(nil)
	_ driven.QueryStore    = (*MetadataStore)(nil)
)

// MetadataStore is an in-memory implementation of the session,
// document and query stores.
type MetadataStore struct {
	mu        sync.RWMutex
	sessions  map[string]domain.Session
	documents map[string]domain.Document
	queries   []domain.QueryRecord
}

// NewMetadataStore creates a new in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		sessions:  make(map[string]domain.Session),
		documents: make(map[string]domain.Document),
	}
}

// CreateSession stores a session.
func (s *MetadataStore) CreateSession(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

// GetSession retrieves a session by ID.
func (s *MetadataStore) GetSession(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// ListSessions returns all sessions, newest first.
func (s *MetadataStore) ListSessions(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteSession removes a session and everything recorded under it.
func (s *MetadataStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, sessionID)
	for id, doc := range s.documents {
		if doc.SessionID == sessionID {
			delete(s.documents, id)
		}
	}
	kept := s.queries[:0]
	for _, record := range s.queries {
		if record.SessionID != sessionID {
			kept = append(kept, record)
		}
	}
	s.queries = kept
	return nil
}

// AddDocument records an indexed document.
func (s *MetadataStore) AddDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *MetadataStore) GetDocument(_ context.Context, documentID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents in a session, oldest first.
func (s *MetadataStore) ListDocuments(_ context.Context, sessionID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for _, doc := range s.documents {
		if doc.SessionID == sessionID {
			result = append(result, doc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IndexedAt.Before(result[j].IndexedAt)
	})
	return result, nil
}

// AddQuery records one exchange.
func (s *MetadataStore) AddQuery(_ context.Context, record *domain.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, *record)
	return nil
}

// ListQueries returns a session's history, oldest first.
func (s *MetadataStore) ListQueries(_ context.Context, sessionID string) ([]domain.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.QueryRecord
	for _, record := range s.queries {
		if record.SessionID == sessionID {
			result = append(result, record)
		}
	}
	return result, nil
}
