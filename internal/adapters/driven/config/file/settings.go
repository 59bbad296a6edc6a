package file

import (
	"os"
	"path/filepath"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/core/ports/driven"
)

// Configuration keys. The TOML file uses nested tables; the store
// flattens them to these dot-notation keys.
const (
	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"

	KeyLLMProvider = "llm.provider"
	KeyLLMModel    = "llm.model"
	KeyLLMBaseURL  = "llm.base_url"
	KeyLLMAPIKey   = "llm.api_key"

	KeyParserURL     = "services.parser_url"
	KeyVisionURL     = "services.vision_url"
	KeyVisionModel   = "services.vision_model"
	KeyGraphURI      = "services.graph_uri"
	KeyGraphUser     = "services.graph_user"
	KeyGraphPassword = "services.graph_password"

	KeyRetrievalTopK = "retrieval.top_k"

	KeyDataDir  = "storage.data_dir"
	KeyChartDir = "storage.chart_dir"
	KeyWatchDir = "storage.watch_dir"
)

// LoadSettings assembles application settings from the config store,
// with environment variables taking precedence for secrets. Unset
// values fall back to domain defaults.
func LoadSettings(store driven.ConfigStore) domain.AppSettings {
	settings := domain.DefaultAppSettings()

	if v := store.GetString(KeyEmbeddingProvider); v != "" {
		settings.Embedding.Provider = domain.AIProvider(v)
	}
	settings.Embedding.Model = store.GetString(KeyEmbeddingModel)
	settings.Embedding.BaseURL = store.GetString(KeyEmbeddingBaseURL)
	settings.Embedding.APIKey = firstNonEmpty(
		os.Getenv("OPENAI_API_KEY"), store.GetString(KeyEmbeddingAPIKey))

	if v := store.GetString(KeyLLMProvider); v != "" {
		settings.LLM.Provider = domain.AIProvider(v)
	}
	settings.LLM.Model = store.GetString(KeyLLMModel)
	settings.LLM.BaseURL = store.GetString(KeyLLMBaseURL)
	var envKey string
	switch settings.LLM.Provider {
	case domain.AIProviderGroq:
		envKey = os.Getenv("GROQ_API_KEY")
	case domain.AIProviderOpenAI:
		envKey = os.Getenv("OPENAI_API_KEY")
	}
	settings.LLM.APIKey = firstNonEmpty(envKey, store.GetString(KeyLLMAPIKey))

	settings.Services.ParserURL = store.GetString(KeyParserURL)
	settings.Services.VisionURL = store.GetString(KeyVisionURL)
	settings.Services.VisionModel = store.GetString(KeyVisionModel)
	settings.Services.GraphURI = firstNonEmpty(
		os.Getenv("NEO4J_URI"), store.GetString(KeyGraphURI))
	settings.Services.GraphUser = firstNonEmpty(
		os.Getenv("NEO4J_USER"), store.GetString(KeyGraphUser))
	settings.Services.GraphPassword = firstNonEmpty(
		os.Getenv("NEO4J_PASSWORD"), store.GetString(KeyGraphPassword))

	if k := store.GetInt(KeyRetrievalTopK); k > 0 {
		settings.Retrieval.TopK = k
	}

	configDir := filepath.Dir(store.Path())
	settings.Storage.DataDir = firstNonEmpty(
		store.GetString(KeyDataDir), filepath.Join(configDir, "data"))
	settings.Storage.ChartDir = firstNonEmpty(
		store.GetString(KeyChartDir), filepath.Join(configDir, "charts"))
	settings.Storage.WatchDir = store.GetString(KeyWatchDir)

	return settings
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
