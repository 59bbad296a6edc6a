package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
	"github.com/meridian-labs/docsage/internal/logger"
)

// SessionService manages sessions (document collections) and their
// query history. The artifact store and graph service are optional;
// when nil, Delete only removes metadata rows.
type SessionService struct {
	sessions  driven.SessionStore
	documents driven.DocumentStore
	queries   driven.QueryStore
	artifacts driven.ArtifactStore
	graph     driven.GraphService
}

// NewSessionService creates a session service.
func NewSessionService(
	sessions driven.SessionStore,
	documents driven.DocumentStore,
	queries driven.QueryStore,
	artifacts driven.ArtifactStore,
	graph driven.GraphService,
) *SessionService {
	return &SessionService{
		sessions:  sessions,
		documents: documents,
		queries:   queries,
		artifacts: artifacts,
		graph:     graph,
	}
}

// Create makes a new session named after the files it will hold.
func (s *SessionService) Create(ctx context.Context, filenames []string) (*domain.Session, error) {
	if len(filenames) == 0 {
		return nil, fmt.Errorf("session filenames: %w", domain.ErrInvalidInput)
	}

	session := domain.Session{
		ID:        uuid.New().String(),
		Name:      strings.Join(filenames, ", "),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.CreateSession(ctx, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// Get retrieves a session by ID.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.GetSession(ctx, sessionID)
}

// List returns all sessions, newest first.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.ListSessions(ctx)
}

// Delete removes a session: graph nodes and index artifacts of every
// document first, then the metadata rows. Artifact and graph cleanup
// is best effort so a dead Neo4j never strands the metadata.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.GetSession(ctx, sessionID); err != nil {
		return err
	}

	docs, err := s.documents.ListDocuments(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range docs {
		if s.graph != nil {
			if err := s.graph.RemoveDocument(ctx, doc.ID); err != nil {
				logger.Warn("Graph cleanup failed for document %s: %v", doc.ID, err)
			}
		}
		if s.artifacts != nil {
			if err := s.artifacts.Delete(doc.ID); err != nil {
				logger.Warn("Artifact cleanup failed for document %s: %v", doc.ID, err)
			}
		}
	}

	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Documents returns the documents indexed into a session.
func (s *SessionService) Documents(ctx context.Context, sessionID string) ([]domain.Document, error) {
	return s.documents.ListDocuments(ctx, sessionID)
}

// History returns a session's question/answer history, oldest first.
func (s *SessionService) History(ctx context.Context, sessionID string) ([]domain.QueryRecord, error) {
	return s.queries.ListQueries(ctx, sessionID)
}
