package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
	"github.com/meridian-labs/docsage/internal/logger"
)

// Placeholders used when one side of the hybrid context is empty.
const (
	noGraphPlaceholder = "No knowledge graph data available for this query."
	noTextPlaceholder  = "No relevant text excerpts were found in the documents."
)

// maxRewordQueryLen caps the input handed to the reword prompt.
const maxRewordQueryLen = 2000

// answerSystemPrompt fixes the generation behaviour: use both context
// sources, surface graph-only relationships, and decline rather than
// invent when the context has no answer.
const answerSystemPrompt = "You are a document analysis assistant. Answer the question using " +
	"ONLY the provided context. Synthesize the knowledge graph relationships and the document " +
	"excerpts together; prefer relationships the graph reveals even when the text does not state " +
	"them explicitly. If the answer is not present in the context, say so explicitly instead of guessing."

// rewordSystemPrompt instructs the model to rewrite, never answer.
const rewordSystemPrompt = "You are a Query Optimization Expert for a RAG system. " +
	"Your goal is to rewrite the user's raw query into a precise, semantically dense search query.\n" +
	"1. Remove conversational filler (e.g., 'I was wondering if you could tell me...').\n" +
	"2. Resolve ambiguous references if possible.\n" +
	"3. Focus on entities, specific terminology, and relationships.\n" +
	"4. Do NOT answer the question. Output ONLY the rewritten query text."

// AnswerGenerator assembles the hybrid context prompt and delegates
// completion to the LLM client.
type AnswerGenerator struct {
	llm driven.LLMClient
}

// NewAnswerGenerator creates an answer generator.
func NewAnswerGenerator(llm driven.LLMClient) *AnswerGenerator {
	return &AnswerGenerator{llm: llm}
}

// GenerateAnswer renders the vector hits and graph facts into one
// prompt and completes it. A provider failure comes back in the
// response's Error field, never as a panic or Go error.
func (g *AnswerGenerator) GenerateAnswer(
	ctx context.Context, question string, hits []domain.RetrievalResult, graphContext string,
) domain.LLMResponse {
	if g.llm == nil {
		return domain.LLMResponse{Error: domain.ErrLLMUnavailable.Error()}
	}

	excerpts := renderExcerpts(hits)
	if excerpts == "" {
		excerpts = noTextPlaceholder
	}
	if strings.TrimSpace(graphContext) == "" {
		graphContext = noGraphPlaceholder
	}

	var b strings.Builder
	b.WriteString("KNOWLEDGE GRAPH CONTEXT:\n")
	b.WriteString(graphContext)
	b.WriteString("\n\nDOCUMENT EXCERPTS:\n")
	b.WriteString(excerpts)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)

	return g.llm.Generate(ctx, b.String(), answerSystemPrompt)
}

// renderExcerpts formats each hit as a SOURCE/CONTENT block separated
// by blank lines.
func renderExcerpts(hits []domain.RetrievalResult) string {
	blocks := make([]string, 0, len(hits))
	for _, hit := range hits {
		blocks = append(blocks, fmt.Sprintf("SOURCE: %s (Page %d)\nCONTENT: %s",
			hit.Chunk.Source, hit.Chunk.Page, hit.Chunk.Text))
	}
	return strings.Join(blocks, "\n\n")
}

// OptimizeQuery rewrites a raw user question into a search-optimised
// query. It is fail-open: any provider error or empty output returns
// the original query unchanged.
func OptimizeQuery(ctx context.Context, llm driven.LLMClient, query string) string {
	if llm == nil || strings.TrimSpace(query) == "" {
		return query
	}

	input := query
	if len(input) > maxRewordQueryLen {
		logger.Warn("Query too long for rewording, truncating to %d chars", maxRewordQueryLen)
		input = input[:maxRewordQueryLen]
	}

	resp := llm.Generate(ctx, input, rewordSystemPrompt)
	if resp.Failed() || strings.TrimSpace(resp.Content) == "" {
		logger.Warn("Query rewording failed: %s. Using original.", resp.Error)
		return query
	}

	cleaned := strings.ReplaceAll(strings.TrimSpace(resp.Content), `"`, "")
	logger.Debug("Query reworded: %q -> %q", query, cleaned)
	return cleaned
}
