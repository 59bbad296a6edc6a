package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/meridian-labs/docsage/internal/core/ports/driving"
	"github.com/meridian-labs/docsage/internal/logger"
)

var watchSession string

// settleDelay gives the writer time to finish before we read the file.
const settleDelay = 500 * time.Millisecond

// supportedExtensions mirrors what the parser service accepts.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".txt":  true,
	".md":   true,
	".mp3":  true,
	".mp4":  true,
	".wav":  true,
}

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and index new documents",
	Long: `Watches a directory and indexes every supported file dropped into it.
Without --session each file gets its own new session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSession, "session", "s", "", "index into an existing session")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexing not configured: set an embedding provider first")
	}

	dir := watchDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no directory given and storage.watch_dir is not configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !supportedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				logger.Debug("Ignoring %s: unsupported extension", event.Name)
				continue
			}
			time.Sleep(settleDelay)
			indexWatched(ctx, cmd, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func indexWatched(ctx context.Context, cmd *cobra.Command, path string) {
	sessionID := watchSession
	if sessionID == "" {
		if sessionService == nil {
			cmd.PrintErrln("session store not configured")
			return
		}
		session, err := sessionService.Create(ctx, []string{filepath.Base(path)})
		if err != nil {
			cmd.PrintErrf("  %s: create session: %v\n", filepath.Base(path), err)
			return
		}
		sessionID = session.ID
	}

	docID, err := indexerService.IndexDocument(ctx, driving.IndexRequest{
		SessionID:   sessionID,
		FilePath:    path,
		VisionModel: defaultVisionModel,
	})
	if err != nil {
		cmd.PrintErrf("  %s: %v\n", filepath.Base(path), err)
		return
	}
	cmd.Printf("  %s indexed (document %s, session %s)\n", filepath.Base(path), docID, sessionID)
}
