// Package neo4j provides a knowledge graph adapter backed by Neo4j.
// Ingestion extracts subject/predicate/object triples from document
// text with an LLM and merges them into the graph; search finds
// entities mentioned in the question and returns their neighborhood.
package neo4j

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
	"github.com/meridian-labs/docsage/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.GraphService = (*Store)(nil)

const extractSystemPrompt = `You are a Knowledge Graph expert.
Extract entities (nodes) and relationships (edges) from the provided text.
Return JSON ONLY in this format:
{
  "triples": [
    {"subject": "Entity1", "type": "Person", "predicate": "WORKS_FOR", "object": "Entity2", "object_type": "Company"},
    ...
  ]
}
Rules:
1. Simplify entity names (e.g., "Elon Musk" instead of "Mr. Musk").
2. Use UPPER_CASE for predicates (e.g., "LOCATED_IN", "HAS_PART").
3. Avoid generic entities like "The Document" or "It".`

const insertCypher = `
MERGE (d:Document {id: $doc_id})
SET d.session_id = $session_id

FOREACH (t IN $triples |
    MERGE (s:Entity {name: t.subject})
    SET s.type = t.type

    MERGE (o:Entity {name: t.object})
    SET o.type = t.object_type

    MERGE (s)-[r:RELATED {type: t.predicate}]->(o)

    MERGE (s)-[:MENTIONED_IN]->(d)
    MERGE (o)-[:MENTIONED_IN]->(d)
)`

const searchCypher = `
MATCH (e:Entity)-[r:RELATED]-(neighbor)
WHERE
    $question CONTAINS toLower(e.name)
    AND (e)-[:MENTIONED_IN]->(:Document {session_id: $session_id})
RETURN e.name AS source, r.type AS rel, neighbor.name AS target
LIMIT 50`

// removeDocumentCypher detaches the document node and garbage-collects
// entities no longer mentioned in any document.
const removeDocumentCypher = `
MATCH (d:Document {id: $doc_id})
OPTIONAL MATCH (d)<-[:MENTIONED_IN]-(e:Entity)
WITH d, collect(e) AS candidates
DETACH DELETE d

WITH candidates
UNWIND candidates AS e
MATCH (e)
WHERE NOT (e)-[:MENTIONED_IN]->(:Document)
DETACH DELETE e`

// Config holds configuration for the graph store.
type Config struct {
	// URI is the Neo4j bolt URI (required, e.g. bolt://localhost:7687).
	URI string

	// Username and Password authenticate against the database.
	Username string
	Password string
}

// Store extracts triples with the given LLM client and persists them
// in Neo4j.
type Store struct {
	driver neo4j.DriverWithContext
	llm    driven.LLMClient
}

// extractedTriple matches the JSON the extraction prompt asks for.
type extractedTriple struct {
	Subject    string `json:"subject"`
	Type       string `json:"type"`
	Predicate  string `json:"predicate"`
	Object     string `json:"object"`
	ObjectType string `json:"object_type"`
}

// NewStore creates a graph store connected to Neo4j.
func NewStore(cfg Config, llm driven.LLMClient) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4j: URI is required")
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return &Store{driver: driver, llm: llm}, nil
}

// Ingest extracts triples from text and merges them into the graph,
// linked to the document node. Extraction failures drop the text
// rather than failing the caller: the graph is a best-effort layer on
// top of vector retrieval.
func (s *Store) Ingest(ctx context.Context, text, documentID, sessionID string) error {
	triples := s.extractTriples(ctx, text)
	if len(triples) == 0 {
		logger.Debug("No triples extracted for document %s", documentID)
		return nil
	}

	params := make([]map[string]any, 0, len(triples))
	for _, t := range triples {
		params = append(params, map[string]any{
			"subject":     t.Subject,
			"type":        t.Type,
			"predicate":   t.Predicate,
			"object":      t.Object,
			"object_type": t.ObjectType,
		})
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, insertCypher, map[string]any{
		"triples":    params,
		"doc_id":     documentID,
		"session_id": sessionID,
	})
	if err != nil {
		return fmt.Errorf("insert triples: %w", err)
	}
	logger.Debug("Ingested %d triples for document %s", len(triples), documentID)
	return nil
}

// Search returns the graph neighborhood of entities whose names appear
// in the question, scoped to documents of the given session.
func (s *Store) Search(ctx context.Context, query, sessionID string) (domain.GraphContext, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, searchCypher, map[string]any{
		"question":   strings.ToLower(query),
		"session_id": sessionID,
	})
	if err != nil {
		return domain.GraphContext{}, fmt.Errorf("search graph: %w", err)
	}

	var (
		sb      strings.Builder
		triples []domain.Triple
	)
	for result.Next(ctx) {
		rec := result.Record()
		t := domain.Triple{
			Source: stringValue(rec, "source"),
			Rel:    stringValue(rec, "rel"),
			Target: stringValue(rec, "target"),
		}
		triples = append(triples, t)
		fmt.Fprintf(&sb, "%s %s %s\n", t.Source, t.Rel, t.Target)
	}
	if err := result.Err(); err != nil {
		return domain.GraphContext{}, fmt.Errorf("read results: %w", err)
	}

	return domain.GraphContext{Context: sb.String(), Triples: triples}, nil
}

// RemoveDocument deletes the document node and any entities orphaned
// by its removal.
func (s *Store) RemoveDocument(ctx context.Context, documentID string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, removeDocumentCypher, map[string]any{"doc_id": documentID})
	if err != nil {
		return fmt.Errorf("remove document: %w", err)
	}
	return nil
}

// Close shuts down the underlying driver.
func (s *Store) Close() error {
	return s.driver.Close(context.Background())
}

// extractTriples asks the LLM for triples and drops anything
// malformed. Returns nil when extraction fails.
func (s *Store) extractTriples(ctx context.Context, text string) []extractedTriple {
	resp := s.llm.Generate(ctx, text, extractSystemPrompt)
	if resp.Failed() {
		logger.Warn("Triple extraction failed: %s", resp.Error)
		return nil
	}

	// Models wrap JSON in markdown fences despite instructions.
	content := strings.TrimSpace(resp.Content)
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")

	var parsed struct {
		Triples []extractedTriple `json:"triples"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		logger.Warn("Triple extraction returned invalid JSON: %v", err)
		return nil
	}

	valid := parsed.Triples[:0]
	for _, t := range parsed.Triples {
		if t.Subject == "" || t.Predicate == "" || t.Object == "" {
			continue
		}
		valid = append(valid, t)
	}
	return valid
}

func stringValue(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
