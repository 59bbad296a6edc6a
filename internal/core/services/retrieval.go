package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
	"github.com/meridian-labs/docsage/internal/core/ports/driving"
	"github.com/meridian-labs/docsage/internal/logger"
	"github.com/meridian-labs/docsage/internal/vectorindex"
)

// Ensure RetrievalService implements the interface.
var _ driving.QueryService = (*RetrievalService)(nil)

const (
	// DefaultTopK is the global result count after the cross-document
	// merge.
	DefaultTopK = 5

	// perDocumentTopK is how many results each document contributes
	// before merging.
	perDocumentTopK = 3

	// overfetchFactor over-fetches raw neighbours so parent
	// deduplication still leaves enough results.
	overfetchFactor = 3

	// noDocumentsResponse is returned when a session has nothing
	// indexed.
	noDocumentsResponse = "No documents found in this session."

	// noIndexesResponse is returned when every document's artifacts
	// failed to load.
	noIndexesResponse = "No document indexes could be loaded for this session."
)

// documentState is one document's loaded index: the flat L2 index, the
// child chunks in index order, and the parent map. Read-only after
// load.
type documentState struct {
	documentID string
	index      *vectorindex.Flat
	chunks     []domain.Chunk
	parents    domain.ParentMap
}

// search retrieves topK results for an already-embedded query. Raw
// neighbours are walked in increasing distance order; each child hit
// is promoted to its parent chunk when the parent resolves, children
// of an already-emitted parent are dropped, and parent-less children
// are emitted as-is.
func (d *documentState) search(queryVec []float32, topK int) ([]domain.RetrievalResult, error) {
	neighbors, err := d.index.Search(queryVec, topK*overfetchFactor)
	if err != nil {
		return nil, err
	}

	results := make([]domain.RetrievalResult, 0, topK)
	seenParents := make(map[string]struct{})

	for _, n := range neighbors {
		if n.Index >= len(d.chunks) {
			continue
		}
		child := d.chunks[n.Index]

		if parent, ok := d.parents[child.ParentID]; child.ParentID != "" && ok {
			if _, dup := seenParents[child.ParentID]; !dup {
				results = append(results, domain.RetrievalResult{Chunk: parent, Distance: n.Distance})
				seenParents[child.ParentID] = struct{}{}
			}
		} else {
			// No resolvable parent: fall back to the child itself.
			results = append(results, domain.RetrievalResult{Chunk: child, Distance: n.Distance})
		}

		if len(results) >= topK {
			break
		}
	}
	return results, nil
}

// RetrievalService answers questions against a session by fanning the
// query out across every document's vector index, merging by raw L2
// distance, enriching with knowledge-graph facts, and generating an
// answer.
//
// Merged distances are NOT normalised across documents: a document
// whose embedding space yields smaller absolute distances is favoured.
// This mirrors the reference ranking policy and is a known accuracy
// caveat, not a bug.
type RetrievalService struct {
	documents driven.DocumentStore
	queries   driven.QueryStore
	artifacts driven.ArtifactStore
	embedder  driven.EmbeddingService
	llm       driven.LLMClient
	graph     driven.GraphService
	generator *AnswerGenerator
	cache     *stateCache
	topK      int
}

// RetrievalOption configures a RetrievalService.
type RetrievalOption func(*RetrievalService)

// WithTopK sets the merged result count per question.
func WithTopK(k int) RetrievalOption {
	return func(s *RetrievalService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// NewRetrievalService creates a retrieval service. llm and graph are
// optional: without llm no answer text is generated (sources are still
// returned), and without graph answers are vector-only.
func NewRetrievalService(
	documents driven.DocumentStore,
	queries driven.QueryStore,
	artifacts driven.ArtifactStore,
	embedder driven.EmbeddingService,
	llm driven.LLMClient,
	graph driven.GraphService,
	opts ...RetrievalOption,
) *RetrievalService {
	s := &RetrievalService{
		documents: documents,
		queries:   queries,
		artifacts: artifacts,
		embedder:  embedder,
		llm:       llm,
		graph:     graph,
		generator: NewAnswerGenerator(llm),
		cache:     newStateCache(DefaultCacheCapacity),
		topK:      DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers one question against a session's documents.
func (s *RetrievalService) Ask(ctx context.Context, sessionID, question string) (domain.Answer, error) {
	logger.Section("Query Execution")
	logger.Debug("Session: %s, question: %q", sessionID, question)

	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, fmt.Errorf("question: %w", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return domain.Answer{}, domain.ErrEmbeddingUnavailable
	}

	docs, err := s.documents.ListDocuments(ctx, sessionID)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return domain.Answer{Response: noDocumentsResponse}, nil
	}

	// Fail-open query optimisation: retrieval uses the optimised
	// query, generation sees the original question.
	searchQuery := OptimizeQuery(ctx, s.llm, question)

	states := s.loadStates(docs)
	if len(states) == 0 {
		return domain.Answer{Response: noIndexesResponse}, nil
	}

	hits, err := s.fanOut(ctx, searchQuery, states)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Info("Retrieved %d merged hits from %d documents", len(hits), len(states))

	graphContext := s.graphContext(ctx, searchQuery, sessionID)

	resp := s.generator.GenerateAnswer(ctx, question, hits, graphContext)

	answer := domain.Answer{
		Response: resp.Content,
		Error:    resp.Error,
		Sources:  sourceRefs(hits),
	}

	if !resp.Failed() && s.queries != nil {
		record := domain.QueryRecord{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Question:  question,
			Answer:    resp.Content,
			Sources:   answer.Sources,
			AskedAt:   time.Now().UTC(),
		}
		if err := s.queries.AddQuery(ctx, &record); err != nil {
			logger.Warn("Failed to record query history: %v", err)
		}
	}

	return answer, nil
}

// loadStates loads each document's artifacts through the LRU cache.
// A document whose artifacts cannot be loaded is logged and skipped;
// it never fails the collection-wide query.
func (s *RetrievalService) loadStates(docs []domain.Document) []*documentState {
	states := make([]*documentState, 0, len(docs))
	for _, doc := range docs {
		state, err := s.loadState(doc.ID)
		if err != nil {
			logger.Warn("Skipping document %s (%s): %v", doc.ID, doc.Filename, err)
			continue
		}
		states = append(states, state)
	}
	return states
}

// loadState returns the cached state for a document or loads its three
// artifacts from the store.
func (s *RetrievalService) loadState(documentID string) (*documentState, error) {
	key := s.artifacts.IndexPath(documentID)
	if state, ok := s.cache.get(key); ok {
		return state, nil
	}

	art, err := s.artifacts.Load(documentID)
	if err != nil {
		return nil, err
	}

	index := vectorindex.NewFlat(art.Dimension)
	if err := index.Add(art.Vectors); err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}

	state := &documentState{
		documentID: documentID,
		index:      index,
		chunks:     art.Chunks,
		parents:    art.Parents,
	}
	s.cache.put(key, state)
	return state, nil
}

// fanOut embeds the query once, searches every document, and merges
// all results by ascending raw distance, truncated to the global topK.
func (s *RetrievalService) fanOut(
	ctx context.Context, query string, states []*documentState,
) ([]domain.RetrievalResult, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	var merged []domain.RetrievalResult
	for _, state := range states {
		hits, err := state.search(queryVec, perDocumentTopK)
		if err != nil {
			logger.Warn("Search failed for document %s: %v", state.documentID, err)
			continue
		}
		merged = append(merged, hits...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Distance < merged[j].Distance
	})
	if len(merged) > s.topK {
		merged = merged[:s.topK]
	}
	return merged, nil
}

// graphContext fetches knowledge-graph facts, degrading to an empty
// context when the graph service is absent or failing.
func (s *RetrievalService) graphContext(ctx context.Context, query, sessionID string) string {
	if s.graph == nil {
		return ""
	}
	gc, err := s.graph.Search(ctx, query, sessionID)
	if err != nil {
		logger.Warn("Knowledge graph search failed: %v", err)
		return ""
	}
	logger.Debug("Graph context: %d triples", len(gc.Triples))
	return gc.Context
}

// sourceRefs converts retrieval hits into citation records.
func sourceRefs(hits []domain.RetrievalResult) []domain.SourceRef {
	refs := make([]domain.SourceRef, len(hits))
	for i, hit := range hits {
		refs[i] = domain.SourceRef{
			Source: hit.Chunk.Source,
			Page:   hit.Chunk.Page,
			Text:   hit.Chunk.Text,
		}
	}
	return refs
}
