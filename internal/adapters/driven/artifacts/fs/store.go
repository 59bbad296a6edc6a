// Package fs persists index artifacts as files under a data directory.
//
// Each document owns three artifacts written together at index time:
// the vector payload, the child-chunk list, and the parent map. They
// are loaded together; a missing piece fails the load.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
	"github.com/meridian-labs/docsage/internal/vectorindex"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Store writes artifacts under dataDir:
//
//	<dataDir>/indexes/index_<id>.vec
//	<dataDir>/chunks/chunks_<id>.json
//	<dataDir>/chunks/parents_<id>.json
type Store struct {
	dataDir string
}

// NewStore creates an artifact store rooted at dataDir, creating the
// layout directories if needed.
func NewStore(dataDir string) (*Store, error) {
	for _, sub := range []string{"indexes", "chunks"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0o700); err != nil {
			return nil, fmt.Errorf("create artifact dir: %w", err)
		}
	}
	return &Store{dataDir: dataDir}, nil
}

// IndexPath returns the vector artifact path for a document. Stable
// across process restarts, so it doubles as a cache key.
func (s *Store) IndexPath(documentID string) string {
	return filepath.Join(s.dataDir, "indexes", "index_"+documentID+".vec")
}

func (s *Store) chunksPath(documentID string) string {
	return filepath.Join(s.dataDir, "chunks", "chunks_"+documentID+".json")
}

func (s *Store) parentsPath(documentID string) string {
	return filepath.Join(s.dataDir, "chunks", "parents_"+documentID+".json")
}

// Save writes all three artifacts for the document.
func (s *Store) Save(documentID string, art *driven.IndexArtifacts) error {
	index := vectorindex.NewFlat(art.Dimension)
	if err := index.Add(art.Vectors); err != nil {
		return fmt.Errorf("artifacts: %w", err)
	}
	payload, err := index.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode vectors: %w", err)
	}

	if err := os.WriteFile(s.IndexPath(documentID), payload, 0o600); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := writeJSON(s.chunksPath(documentID), art.Chunks); err != nil {
		return fmt.Errorf("write chunks: %w", err)
	}
	if err := writeJSON(s.parentsPath(documentID), art.Parents); err != nil {
		return fmt.Errorf("write parents: %w", err)
	}
	return nil
}

// Load reads all three artifacts back. Any absent piece yields
// domain.ErrArtifactMissing.
func (s *Store) Load(documentID string) (*driven.IndexArtifacts, error) {
	payload, err := os.ReadFile(s.IndexPath(documentID))
	if err != nil {
		return nil, missing(documentID, "index", err)
	}

	var index vectorindex.Flat
	if err := index.UnmarshalBinary(payload); err != nil {
		return nil, fmt.Errorf("decode vectors for %s: %w", documentID, err)
	}

	var chunks []domain.Chunk
	if err := readJSON(s.chunksPath(documentID), &chunks); err != nil {
		return nil, missing(documentID, "chunks", err)
	}

	parents := domain.ParentMap{}
	if err := readJSON(s.parentsPath(documentID), &parents); err != nil {
		return nil, missing(documentID, "parents", err)
	}

	return &driven.IndexArtifacts{
		Dimension: index.Dimension(),
		Vectors:   index.Vectors(),
		Chunks:    chunks,
		Parents:   parents,
	}, nil
}

// Delete removes the document's artifacts. Pieces already gone are
// ignored so a partially written document can still be cleaned up.
func (s *Store) Delete(documentID string) error {
	paths := []string{
		s.IndexPath(documentID),
		s.chunksPath(documentID),
		s.parentsPath(documentID),
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete artifact %s: %w", path, err)
		}
	}
	return nil
}

func missing(documentID, artifact string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s artifact for document %s", domain.ErrArtifactMissing, artifact, documentID)
	}
	return fmt.Errorf("read %s artifact for %s: %w", artifact, documentID, err)
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
