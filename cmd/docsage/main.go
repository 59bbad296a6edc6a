// Command docsage is a document question-answering CLI. It indexes
// documents into sessions and answers questions using vector
// retrieval, a Neo4j knowledge graph and an LLM.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/meridian-labs/docsage/internal/adapters/driven/ai"
	artifactsfs "github.com/meridian-labs/docsage/internal/adapters/driven/artifacts/fs"
	configfile "github.com/meridian-labs/docsage/internal/adapters/driven/config/file"
	graphneo4j "github.com/meridian-labs/docsage/internal/adapters/driven/graph/neo4j"
	parserapi "github.com/meridian-labs/docsage/internal/adapters/driven/parser/httpapi"
	"github.com/meridian-labs/docsage/internal/adapters/driven/storage/sqlite"
	visionapi "github.com/meridian-labs/docsage/internal/adapters/driven/vision/httpapi"
	"github.com/meridian-labs/docsage/internal/adapters/driving/cli"
	"github.com/meridian-labs/docsage/internal/chunker"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
	"github.com/meridian-labs/docsage/internal/core/services"
	"github.com/meridian-labs/docsage/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings := configfile.LoadSettings(configStore)

	metadata, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}
	defer metadata.Close()

	artifacts, err := artifactsfs.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}

	// AI providers are optional: without them the CLI still serves
	// session listing and history.
	embedder, err := ai.CreateEmbeddingService(settings.Embedding)
	if err != nil {
		logger.Warn("Embedding provider unavailable: %v", err)
	}
	llm, err := ai.CreateLLMClient(settings.LLM)
	if err != nil {
		logger.Warn("LLM provider unavailable: %v", err)
	}
	if llm != nil {
		defer llm.Close()
	}
	if embedder != nil {
		defer embedder.Close()
	}

	var parser driven.DocumentParser
	if settings.Services.ParserURL != "" {
		parser, err = parserapi.NewClient(parserapi.Config{BaseURL: settings.Services.ParserURL})
		if err != nil {
			return fmt.Errorf("parser client: %w", err)
		}
	}

	var (
		vision driven.VisionDescriber
		audio  driven.AudioTranscriber
	)
	if settings.Services.VisionURL != "" {
		visionClient, err := visionapi.NewClient(visionapi.Config{BaseURL: settings.Services.VisionURL})
		if err != nil {
			return fmt.Errorf("vision client: %w", err)
		}
		vision = visionClient
		audio = visionClient
	}

	var graph driven.GraphService
	if settings.Services.GraphURI != "" && llm != nil {
		graphStore, err := graphneo4j.NewStore(graphneo4j.Config{
			URI:      settings.Services.GraphURI,
			Username: settings.Services.GraphUser,
			Password: settings.Services.GraphPassword,
		}, llm)
		if err != nil {
			logger.Warn("Knowledge graph unavailable: %v", err)
		} else {
			graph = graphStore
			defer graphStore.Close()
		}
	}

	sessions := services.NewSessionService(metadata, metadata, metadata, artifacts, graph)

	var indexer *services.Indexer
	if parser != nil && embedder != nil {
		indexer = services.NewIndexer(
			parser, vision, audio, embedder,
			chunker.New(), artifacts, metadata, graph,
			settings.Storage.ChartDir,
		)
	}

	retrieval := services.NewRetrievalService(
		metadata, metadata, artifacts, embedder, llm, graph,
		services.WithTopK(settings.Retrieval.TopK),
	)

	svcs := cli.Services{
		Query:       retrieval,
		Sessions:    sessions,
		Settings:    settings,
		VisionModel: settings.Services.VisionModel,
		WatchDir:    settings.Storage.WatchDir,
	}
	if indexer != nil {
		svcs.Indexer = indexer
	}
	cli.SetServices(svcs)

	return cli.Execute()
}
