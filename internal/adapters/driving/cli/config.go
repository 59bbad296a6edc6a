package cli

import (
	"github.com/spf13/cobra"

	"github.com/meridian-labs/docsage/internal/adapters/driven/ai"
	"github.com/meridian-labs/docsage/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect provider configuration",
}

var configProvidersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported AI providers",
	Args:  cobra.NoArgs,
	RunE:  runConfigProviders,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate connectivity of the configured providers",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configProvidersCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigProviders(cmd *cobra.Command, args []string) error {
	for _, p := range domain.AllAIProviders() {
		access := "API key required"
		if p.IsLocal() {
			access = "local, no API key"
		} else if !p.RequiresAPIKey() {
			access = "no API key"
		}
		cmd.Printf("  %-8s %s (%s)\n", p.String(), p.Description(), access)
	}
	return nil
}

// runConfigCheck builds each configured provider and pings it, so a
// bad endpoint or key is caught here instead of mid-indexing.
func runConfigCheck(cmd *cobra.Command, args []string) error {
	embedder, err := ai.CreateAndValidateEmbeddingService(appSettings.Embedding)
	switch {
	case err != nil:
		cmd.Printf("Embedding: FAILED (%v)\n", err)
	case embedder == nil:
		cmd.Println("Embedding: not configured")
	default:
		cmd.Printf("Embedding: OK (%s)\n", embedder.ModelName())
		embedder.Close()
	}

	llm, err := ai.CreateAndValidateLLMClient(appSettings.LLM)
	switch {
	case err != nil:
		cmd.Printf("LLM: FAILED (%v)\n", err)
	case llm == nil:
		cmd.Println("LLM: not configured")
	default:
		cmd.Printf("LLM: OK (%s)\n", llm.ModelName())
		llm.Close()
	}
	return nil
}
