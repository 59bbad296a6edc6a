package domain

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama, or to override a cloud
	// provider's endpoint).
	BaseURL string

	// APIKey is the API key (for OpenAI/Groq).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ServiceSettings holds endpoints for the external helper services.
// Empty URLs disable the corresponding capability.
type ServiceSettings struct {
	// ParserURL is the document parser service base URL.
	ParserURL string

	// VisionURL is the vision/transcription service base URL.
	VisionURL string

	// VisionModel is the default model for chart description.
	VisionModel string

	// GraphURI is the Neo4j bolt URI for the knowledge graph.
	GraphURI string

	// GraphUser and GraphPassword authenticate against Neo4j.
	GraphUser     string
	GraphPassword string
}

// RetrievalSettings holds retrieval behaviour configuration.
type RetrievalSettings struct {
	// TopK is the number of chunks returned per question.
	TopK int
}

// StorageSettings holds on-disk layout configuration.
type StorageSettings struct {
	// DataDir is the root directory for indexes, chunk stores and the
	// metadata database.
	DataDir string

	// ChartDir is where extracted images are written during parsing.
	ChartDir string

	// WatchDir is the directory observed by the watch command.
	WatchDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Services holds external helper service endpoints.
	Services ServiceSettings

	// Retrieval holds retrieval behaviour settings.
	Retrieval RetrievalSettings

	// Storage holds on-disk layout settings.
	Storage StorageSettings
}

// DefaultAppSettings returns settings with local-first defaults:
// Ollama for both embeddings and completion, no helper services.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
		},
		Retrieval: RetrievalSettings{
			TopK: 5,
		},
	}
}

// AllAIProviders returns all available AI providers.
func AllAIProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderGroq}
}
