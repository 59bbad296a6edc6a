// Package cli implements the cobra command tree. Commands talk to the
// core exclusively through driving ports; wiring happens in main.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driving"
	"github.com/meridian-labs/docsage/internal/core/services"
	"github.com/meridian-labs/docsage/internal/logger"
)

var verboseFlag bool

// Injected services. Commands check for nil: a partially configured
// installation still gets session listing and history.
var (
	indexerService driving.IndexerService
	queryService   driving.QueryService
	sessionService *services.SessionService

	appSettings        domain.AppSettings
	defaultVisionModel string
	watchDir           string
)

var rootCmd = &cobra.Command{
	Use:   "docsage",
	Short: "Ask questions about your documents",
	Long: `docsage indexes documents into per-conversation sessions and answers
questions about them using vector retrieval, a knowledge graph and an LLM.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services carries everything the command tree needs.
type Services struct {
	Indexer  driving.IndexerService
	Query    driving.QueryService
	Sessions *services.SessionService

	// Settings are the resolved application settings, used by the
	// config commands.
	Settings domain.AppSettings

	// VisionModel is the default model for chart description.
	VisionModel string

	// WatchDir is the directory observed by the watch command.
	WatchDir string
}

// SetServices injects service dependencies before Execute.
func SetServices(s Services) {
	indexerService = s.Indexer
	queryService = s.Query
	sessionService = s.Sessions
	appSettings = s.Settings
	defaultVisionModel = s.VisionModel
	watchDir = s.WatchDir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
