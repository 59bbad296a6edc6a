package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "key"})

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})

	assert.Error(t, err)
}

func TestNewEmbeddingService_UnknownModelRejected(t *testing.T) {
	// A dimension of 0 would make every index build fail later with a
	// mismatch error, so an unknown model must be caught here.
	_, err := NewEmbeddingService(Config{APIKey: "key", Model: "text-embedding-4-huge"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown embedding model")
}

func TestNewEmbeddingService_UnknownModelWithExplicitDimensions(t *testing.T) {
	svc, err := NewEmbeddingService(Config{
		APIKey:     "key",
		Model:      "text-embedding-4-huge",
		Dimensions: 512,
	})

	require.NoError(t, err)
	assert.Equal(t, 512, svc.Dimensions())
}
