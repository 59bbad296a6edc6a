package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/docsage/internal/core/ports/driving"
)

var (
	indexSession     string
	indexVisionModel string
)

var indexCmd = &cobra.Command{
	Use:   "index [files...]",
	Short: "Index documents into a session",
	Long: `Parses, chunks and embeds one or more documents. Without --session a
new session named after the files is created. Each document is indexed
independently: one failure does not abort the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexSession, "session", "s", "", "add documents to an existing session")
	indexCmd.Flags().StringVar(&indexVisionModel, "vision-model", "", "vision model for chart description")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexing not configured: set an embedding provider first")
	}
	if sessionService == nil {
		return errors.New("session store not configured")
	}

	ctx := context.Background()

	sessionID := indexSession
	if sessionID == "" {
		names := make([]string, 0, len(args))
		for _, path := range args {
			names = append(names, filepath.Base(path))
		}
		session, err := sessionService.Create(ctx, names)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		sessionID = session.ID
		cmd.Printf("Created session %s (%s)\n", session.ID, session.Name)
	}

	visionModel := indexVisionModel
	if visionModel == "" {
		visionModel = defaultVisionModel
	}

	var failed int
	for _, path := range args {
		docID, err := indexerService.IndexDocument(ctx, driving.IndexRequest{
			SessionID:   sessionID,
			FilePath:    path,
			VisionModel: visionModel,
		})
		if err != nil {
			failed++
			cmd.PrintErrf("  %s: %v\n", filepath.Base(path), err)
			continue
		}
		cmd.Printf("  %s indexed (document %s)\n", filepath.Base(path), docID)
	}

	if failed == len(args) {
		return errors.New("all documents failed to index")
	}
	return nil
}
