// Package sqlite provides the SQLite-backed metadata store for
// sessions, documents and query history.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/meridian-labs/docsage/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
)

// Ensure Store implements the metadata interfaces.
var (
	_ driven.SessionStore  = (*Store)(nil)
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.QueryStore    = (*Store)(nil)
)

// Store is the SQLite-backed metadata store. Artifacts never live
// here; only provenance rows do.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the metadata database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL mode for better concurrency between indexing and querying.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every embedded .sql file in lexical order.
func (s *Store) migrate(migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// --- SessionStore ---

// CreateSession inserts a session row.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, created_at) VALUES (?, ?, ?)`,
		session.ID, session.Name, session.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM sessions WHERE id = ?`, sessionID)

	var session domain.Session
	var createdAt string
	if err := row.Scan(&session.ID, &session.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	session.CreatedAt = parseTime(createdAt)
	return &session, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var session domain.Session
		var createdAt string
		if err := rows.Scan(&session.ID, &session.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session; document and query rows go with it
// via ON DELETE CASCADE.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}

// --- DocumentStore ---

// AddDocument inserts a document row.
func (s *Store) AddDocument(ctx context.Context, doc *domain.Document) error {
	descriptions, err := json.Marshal(doc.ChartDescriptions)
	if err != nil {
		return fmt.Errorf("marshal chart descriptions: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents
		 (id, session_id, filename, vision_model, chart_dir, chart_descriptions, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.SessionID, doc.Filename, doc.VisionModel, doc.ChartDir,
		string(descriptions), doc.IndexedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, filename, vision_model, chart_dir, chart_descriptions, indexed_at
		 FROM documents WHERE id = ?`, documentID)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
		}
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns all documents in a session, oldest first.
func (s *Store) ListDocuments(ctx context.Context, sessionID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, filename, vision_model, chart_dir, chart_descriptions, indexed_at
		 FROM documents WHERE session_id = ? ORDER BY indexed_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// --- QueryStore ---

// AddQuery inserts a query history row.
func (s *Store) AddQuery(ctx context.Context, record *domain.QueryRecord) error {
	sources, err := json.Marshal(record.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO queries (id, session_id, question, answer, sources, asked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.SessionID, record.Question, record.Answer,
		string(sources), record.AskedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

// ListQueries returns a session's history, oldest first.
func (s *Store) ListQueries(ctx context.Context, sessionID string) ([]domain.QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, question, answer, sources, asked_at
		 FROM queries WHERE session_id = ? ORDER BY asked_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []domain.QueryRecord
	for rows.Next() {
		var record domain.QueryRecord
		var sources, askedAt string
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Question,
			&record.Answer, &sources, &askedAt); err != nil {
			return nil, fmt.Errorf("scan query: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &record.Sources); err != nil {
			return nil, fmt.Errorf("unmarshal sources: %w", err)
		}
		record.AskedAt = parseTime(askedAt)
		records = append(records, record)
	}
	return records, rows.Err()
}

// scanDocument scans one document row, decoding the chart description
// JSON column.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var descriptions, indexedAt string
	if err := scan(&doc.ID, &doc.SessionID, &doc.Filename, &doc.VisionModel,
		&doc.ChartDir, &descriptions, &indexedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(descriptions), &doc.ChartDescriptions); err != nil {
		return nil, fmt.Errorf("unmarshal chart descriptions: %w", err)
	}
	doc.IndexedAt = parseTime(indexedAt)
	return &doc, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
