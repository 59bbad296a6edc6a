package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/docsage/internal/chunker"
	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
	"github.com/meridian-labs/docsage/internal/core/ports/driving"
	"github.com/meridian-labs/docsage/internal/logger"
	"github.com/meridian-labs/docsage/internal/vectorindex"
)

// Ensure Indexer implements the interface.
var _ driving.IndexerService = (*Indexer)(nil)

// visionPrompt asks for descriptions dense enough to be retrievable.
const visionPrompt = "Analyze the image and produce a precise, factual description. " +
	"If it contains charts/graphs: identify the type, transcribe titles and labels, " +
	"and list data points and values. Do not omit numeric values."

// Degradation placeholders for failed collaborators.
const (
	visionFailurePlaceholder = "Image analysis failed."
	audioFailurePlaceholder  = "Audio transcription unavailable."
)

// Indexer runs the per-document pipeline: parse, describe visuals,
// transcribe audio, chunk, embed, index, persist. Steps within one
// document are strictly sequential; separate documents may run on
// separate goroutines since each run writes only its own artifacts.
type Indexer struct {
	parser    driven.DocumentParser
	vision    driven.VisionDescriber
	audio     driven.AudioTranscriber
	embedder  driven.EmbeddingService
	chunker   *chunker.Chunker
	artifacts driven.ArtifactStore
	documents driven.DocumentStore
	graph     driven.GraphService
	chartDir  string
}

// NewIndexer creates an indexer. vision, audio and graph are optional;
// their absence degrades to placeholder text or skipped ingest.
func NewIndexer(
	parser driven.DocumentParser,
	vision driven.VisionDescriber,
	audio driven.AudioTranscriber,
	embedder driven.EmbeddingService,
	chk *chunker.Chunker,
	artifacts driven.ArtifactStore,
	documents driven.DocumentStore,
	graph driven.GraphService,
	chartDir string,
) *Indexer {
	return &Indexer{
		parser:    parser,
		vision:    vision,
		audio:     audio,
		embedder:  embedder,
		chunker:   chk,
		artifacts: artifacts,
		documents: documents,
		graph:     graph,
		chartDir:  chartDir,
	}
}

// IndexDocument processes one file into a searchable document. Any
// failure is a failure of this document only.
func (ix *Indexer) IndexDocument(ctx context.Context, req driving.IndexRequest) (string, error) {
	logger.Section("Document Indexing")
	logger.Info("Indexing %s into session %s", req.FilePath, req.SessionID)

	documentID := uuid.New().String()
	filename := filepath.Base(req.FilePath)

	outputDir := filepath.Join(ix.chartDir, documentID+"_"+filename)
	if err := os.MkdirAll(outputDir, 0o700); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	// 1. Parse layout.
	parsed, err := ix.parser.Parse(ctx, req.FilePath, outputDir)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filename, err)
	}
	text := parsed.Text

	// 2. Vision analysis, one call per extracted image.
	descriptions := make(map[string]string, len(parsed.Images))
	for _, imgPath := range parsed.Images {
		imgName := filepath.Base(imgPath)
		desc := ix.describeImage(ctx, imgPath, req.VisionModel)
		descriptions[imgName] = desc

		placeholder := fmt.Sprintf("[CHART_PLACEHOLDER:%s]", imgName)
		replacement := fmt.Sprintf("\n> **Visual Analysis (%s):**\n> %s\n", imgName, desc)
		text = strings.ReplaceAll(text, placeholder, replacement)
	}

	// 3. Audio transcription.
	if parsed.AudioPath != "" {
		text += "\n\n" + ix.transcribeAudio(ctx, parsed.AudioPath)
	}

	// 4. Chunking.
	children, parents, err := ix.chunker.Process(text, filename)
	if err != nil {
		return "", fmt.Errorf("chunk %s: %w", filename, err)
	}
	if len(children) == 0 {
		logger.Warn("No text chunks generated for %s", filename)
	}

	// 5. Embedding + indexing. The index stores vectors in child-chunk
	// order; that ordering is the index-to-chunk mapping.
	vectors, err := ix.embedChildren(ctx, children)
	if err != nil {
		return "", fmt.Errorf("embed %s: %w", filename, err)
	}

	index := vectorindex.NewFlat(ix.embedder.Dimensions())
	if err := index.Add(vectors); err != nil {
		return "", fmt.Errorf("index %s: %w", filename, err)
	}

	// 6. Persist the three artifacts together.
	art := &driven.IndexArtifacts{
		Dimension: index.Dimension(),
		Vectors:   index.Vectors(),
		Chunks:    children,
		Parents:   parents,
	}
	if err := ix.artifacts.Save(documentID, art); err != nil {
		return "", fmt.Errorf("save artifacts for %s: %w", filename, err)
	}

	doc := domain.Document{
		ID:                documentID,
		SessionID:         req.SessionID,
		Filename:          filename,
		VisionModel:       req.VisionModel,
		ChartDir:          outputDir,
		ChartDescriptions: descriptions,
		IndexedAt:         time.Now().UTC(),
	}
	if err := ix.documents.AddDocument(ctx, &doc); err != nil {
		return "", fmt.Errorf("record document %s: %w", filename, err)
	}

	// 7. Offer the text to the knowledge graph. Best effort: graph
	// absence or failure never fails the document.
	if ix.graph != nil {
		if err := ix.graph.Ingest(ctx, text, documentID, req.SessionID); err != nil {
			logger.Warn("Graph ingest failed for %s: %v", filename, err)
		}
	}

	logger.Info("Indexed %s: %d children, %d parents", filename, len(children), len(parents))
	return documentID, nil
}

// describeImage calls the vision service, degrading to a placeholder
// on any failure.
func (ix *Indexer) describeImage(ctx context.Context, imgPath, modelName string) string {
	if ix.vision == nil {
		return visionFailurePlaceholder
	}
	desc, err := ix.vision.Describe(ctx, imgPath, visionPrompt, modelName)
	if err != nil {
		logger.Warn("Vision describe failed for %s: %v", imgPath, err)
		return visionFailurePlaceholder
	}
	return desc
}

// transcribeAudio calls the transcription service, degrading to a
// placeholder on any failure.
func (ix *Indexer) transcribeAudio(ctx context.Context, audioPath string) string {
	if ix.audio == nil {
		return audioFailurePlaceholder
	}
	transcript, err := ix.audio.Transcribe(ctx, audioPath)
	if err != nil {
		logger.Warn("Transcription failed for %s: %v", audioPath, err)
		return audioFailurePlaceholder
	}
	return transcript
}

// embedChildren embeds every child chunk's text in batch, preserving
// order.
func (ix *Indexer) embedChildren(ctx context.Context, children []domain.Chunk) ([][]float32, error) {
	if len(children) == 0 {
		return nil, nil
	}
	texts := make([]string, len(children))
	for i, c := range children {
		texts[i] = c.Text
	}
	return ix.embedder.EmbedBatch(ctx, texts)
}
