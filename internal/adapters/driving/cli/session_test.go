package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/docsage/internal/adapters/driven/storage/memory"
	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/services"
)

// setupSessionService wires the commands to a memory-backed session
// service and restores the previous wiring afterwards.
func setupSessionService(t *testing.T) *memory.MetadataStore {
	t.Helper()
	original := sessionService
	store := memory.NewMetadataStore()
	sessionService = services.NewSessionService(store, store, store, nil, nil)
	t.Cleanup(func() { sessionService = original })
	return store
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSessionListCmd_Empty(t *testing.T) {
	setupSessionService(t)

	out, err := executeCommand(t, "session", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet")
}

func TestSessionListCmd_ShowsSessions(t *testing.T) {
	store := setupSessionService(t)
	require.NoError(t, store.CreateSession(context.Background(), &domain.Session{
		ID: "s1", Name: "report.pdf", CreatedAt: time.Now(),
	}))

	out, err := executeCommand(t, "session", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "s1")
	assert.Contains(t, out, "report.pdf")
}

func TestSessionShowCmd_DocumentsAndHistory(t *testing.T) {
	store := setupSessionService(t)
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, &domain.Session{ID: "s1", Name: "report.pdf"}))
	require.NoError(t, store.AddDocument(ctx, &domain.Document{
		ID: "d1", SessionID: "s1", Filename: "report.pdf", IndexedAt: time.Now(),
	}))
	require.NoError(t, store.AddQuery(ctx, &domain.QueryRecord{
		ID: "q1", SessionID: "s1", Question: "what?", Answer: "that",
	}))

	out, err := executeCommand(t, "session", "show", "s1")

	require.NoError(t, err)
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "Q: what?")
	assert.Contains(t, out, "A: that")
}

func TestSessionShowCmd_NotFound(t *testing.T) {
	setupSessionService(t)

	_, err := executeCommand(t, "session", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionDeleteCmd_RemovesSession(t *testing.T) {
	store := setupSessionService(t)
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, &domain.Session{ID: "s1", Name: "report.pdf"}))
	require.NoError(t, store.AddDocument(ctx, &domain.Document{
		ID: "d1", SessionID: "s1", Filename: "report.pdf", IndexedAt: time.Now(),
	}))

	out, err := executeCommand(t, "session", "delete", "s1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session s1")
	_, err = store.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	docs, err := store.ListDocuments(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSessionDeleteCmd_NotFound(t *testing.T) {
	setupSessionService(t)

	_, err := executeCommand(t, "session", "delete", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionCmds_NoStore(t *testing.T) {
	original := sessionService
	sessionService = nil
	t.Cleanup(func() { sessionService = original })

	_, err := executeCommand(t, "session", "list")

	assert.Error(t, err)
}
