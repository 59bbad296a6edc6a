package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

func TestMetadataStore_SessionLifecycle(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()

	session := domain.Session{ID: "s1", Name: "a.pdf", CreatedAt: time.Now()}
	require.NoError(t, store.CreateSession(ctx, &session))

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Name)

	_, err = store.GetSession(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMetadataStore_ListSessions_NewestFirst(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.CreateSession(ctx, &domain.Session{ID: "old", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, store.CreateSession(ctx, &domain.Session{ID: "new", CreatedAt: now}))

	sessions, err := store.ListSessions(ctx)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "new", sessions[0].ID)
}

func TestMetadataStore_DocumentsScopedToSession(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.AddDocument(ctx, &domain.Document{ID: "d1", SessionID: "s1", IndexedAt: now}))
	require.NoError(t, store.AddDocument(ctx, &domain.Document{ID: "d2", SessionID: "s1", IndexedAt: now.Add(time.Second)}))
	require.NoError(t, store.AddDocument(ctx, &domain.Document{ID: "d3", SessionID: "s2", IndexedAt: now}))

	docs, err := store.ListDocuments(ctx, "s1")

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "d1", docs[0].ID, "oldest first")
}

func TestMetadataStore_QueryHistoryInInsertionOrder(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{ID: "q1", SessionID: "s1", Question: "first"}))
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{ID: "q2", SessionID: "s1", Question: "second"}))
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{ID: "q3", SessionID: "s2", Question: "other"}))

	history, err := store.ListQueries(ctx, "s1")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Question)
	assert.Equal(t, "second", history[1].Question)
}

func TestMetadataStore_DeleteSession(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, &domain.Session{ID: "s1", CreatedAt: time.Now()}))
	require.NoError(t, store.AddDocument(ctx, &domain.Document{ID: "d1", SessionID: "s1", IndexedAt: time.Now()}))
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{ID: "q1", SessionID: "s1", Question: "what?"}))
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{ID: "q2", SessionID: "s2", Question: "other"}))

	require.NoError(t, store.DeleteSession(ctx, "s1"))

	_, err := store.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	docs, err := store.ListDocuments(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, docs)
	other, err := store.ListQueries(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other, 1, "unrelated sessions keep their history")
}

func TestMetadataStore_DeleteSession_NotFound(t *testing.T) {
	store := NewMetadataStore()

	err := store.DeleteSession(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
