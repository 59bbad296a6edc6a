package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/docsage/internal/adapters/driven/storage/memory"
	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
)

func newSessionFixture() (*SessionService, *memory.MetadataStore) {
	store := memory.NewMetadataStore()
	return NewSessionService(store, store, store, nil, nil), store
}

func TestSessionService_Create(t *testing.T) {
	service, _ := newSessionFixture()

	session, err := service.Create(context.Background(), []string{"report.pdf", "notes.docx"})

	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "report.pdf, notes.docx", session.Name)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestSessionService_Create_NoFilenames(t *testing.T) {
	service, _ := newSessionFixture()

	_, err := service.Create(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionService_Get_NotFound(t *testing.T) {
	service, _ := newSessionFixture()

	_, err := service.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_List_NewestFirst(t *testing.T) {
	service, store := newSessionFixture()
	ctx := context.Background()
	old := domain.Session{ID: "old", Name: "old", CreatedAt: time.Now().Add(-time.Hour)}
	recent := domain.Session{ID: "recent", Name: "recent", CreatedAt: time.Now()}
	require.NoError(t, store.CreateSession(ctx, &old))
	require.NoError(t, store.CreateSession(ctx, &recent))

	sessions, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "recent", sessions[0].ID)
	assert.Equal(t, "old", sessions[1].ID)
}

func TestSessionService_Delete_CleansDocumentState(t *testing.T) {
	store := memory.NewMetadataStore()
	artifacts := newMockArtifactStore()
	graph := &mockGraph{}
	service := NewSessionService(store, store, store, artifacts, graph)
	ctx := context.Background()

	session, err := service.Create(ctx, []string{"a.pdf"})
	require.NoError(t, err)
	require.NoError(t, store.AddDocument(ctx, &domain.Document{
		ID: "doc-1", SessionID: session.ID, Filename: "a.pdf", IndexedAt: time.Now(),
	}))
	require.NoError(t, artifacts.Save("doc-1", &driven.IndexArtifacts{Dimension: 2}))
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{
		ID: "q-1", SessionID: session.ID, Question: "what?", AskedAt: time.Now(),
	}))

	require.NoError(t, service.Delete(ctx, session.ID))

	_, err = service.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"doc-1"}, graph.removed)
	_, err = artifacts.Load("doc-1")
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestSessionService_Delete_GraphFailureIsNotFatal(t *testing.T) {
	store := memory.NewMetadataStore()
	artifacts := newMockArtifactStore()
	graph := &mockGraph{removeErr: errors.New("neo4j down")}
	service := NewSessionService(store, store, store, artifacts, graph)
	ctx := context.Background()

	session, err := service.Create(ctx, []string{"a.pdf"})
	require.NoError(t, err)
	require.NoError(t, store.AddDocument(ctx, &domain.Document{
		ID: "doc-1", SessionID: session.ID, Filename: "a.pdf", IndexedAt: time.Now(),
	}))

	require.NoError(t, service.Delete(ctx, session.ID))

	_, err = service.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_Delete_NotFound(t *testing.T) {
	service, _ := newSessionFixture()

	err := service.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_DocumentsAndHistory(t *testing.T) {
	service, store := newSessionFixture()
	ctx := context.Background()

	session, err := service.Create(ctx, []string{"a.pdf"})
	require.NoError(t, err)

	require.NoError(t, store.AddDocument(ctx, &domain.Document{
		ID: "doc-1", SessionID: session.ID, Filename: "a.pdf", IndexedAt: time.Now(),
	}))
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{
		ID: "q-1", SessionID: session.ID, Question: "what?", Answer: "that", AskedAt: time.Now(),
	}))

	docs, err := service.Documents(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	history, err := service.History(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "what?", history[0].Question)
}
