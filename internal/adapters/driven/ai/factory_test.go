package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

func TestCreateEmbeddingService_Unconfigured(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{})

	require.NoError(t, err)
	assert.Nil(t, svc, "an unconfigured provider is not an error")
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()
	assert.NotEmpty(t, svc.ModelName())
}

func TestCreateEmbeddingService_OpenAIRequiresKey(t *testing.T) {
	// Missing API key means not configured, not an error.
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
	})

	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_GroqUnsupported(t *testing.T) {
	_, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderGroq,
		APIKey:   "key",
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestCreateLLMClient_Unconfigured(t *testing.T) {
	client, err := CreateLLMClient(domain.LLMSettings{})

	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestCreateLLMClient_Ollama(t *testing.T) {
	client, err := CreateLLMClient(domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
	})

	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()
	assert.Equal(t, "llama3.2", client.ModelName())
}

func TestCreateLLMClient_Groq(t *testing.T) {
	client, err := CreateLLMClient(domain.LLMSettings{
		Provider: domain.AIProviderGroq,
		APIKey:   "key",
	})

	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()
	assert.NotEmpty(t, client.ModelName())
}

func TestCreateLLMClient_InvalidProvider(t *testing.T) {
	client, err := CreateLLMClient(domain.LLMSettings{
		Provider: domain.AIProvider("mystery"),
	})

	require.NoError(t, err, "an unrecognised provider is treated as unconfigured")
	assert.Nil(t, client)
}

func TestCreateAndValidateEmbeddingService_Unconfigured(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(domain.EmbeddingSettings{})

	require.NoError(t, err)
	assert.Nil(t, svc, "nothing to validate when no provider is configured")
}

func TestCreateAndValidateEmbeddingService_GroqRejected(t *testing.T) {
	_, err := CreateAndValidateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderGroq,
		APIKey:   "key",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestCreateAndValidateLLMClient_Unconfigured(t *testing.T) {
	client, err := CreateAndValidateLLMClient(domain.LLMSettings{})

	require.NoError(t, err)
	assert.Nil(t, client)
}
