package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "groq"))

	assert.Equal(t, "groq", store.GetString("llm.provider"))
}

func TestConfigStore_GetMissingKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("retrieval.top_k", 8))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 8, reopened.GetInt("retrieval.top_k"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[llm]\nprovider = \"ollama\"\nmodel = \"llama3.2\"\n\n[retrieval]\ntop_k = 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))
	assert.Equal(t, 7, store.GetInt("retrieval.top_k"))
}

func TestLoadSettings_Defaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := LoadSettings(store)

	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, 5, settings.Retrieval.TopK)
	assert.NotEmpty(t, settings.Storage.DataDir, "data dir defaults under the config dir")
}

func TestLoadSettings_FromStore(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyLLMProvider, "groq"))
	require.NoError(t, store.Set(KeyLLMAPIKey, "stored-key"))
	require.NoError(t, store.Set(KeyRetrievalTopK, 9))
	require.NoError(t, store.Set(KeyParserURL, "http://localhost:8001"))

	settings := LoadSettings(store)

	assert.Equal(t, domain.AIProviderGroq, settings.LLM.Provider)
	assert.Equal(t, "stored-key", settings.LLM.APIKey)
	assert.Equal(t, 9, settings.Retrieval.TopK)
	assert.Equal(t, "http://localhost:8001", settings.Services.ParserURL)
}

func TestLoadSettings_EnvOverridesSecrets(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyLLMProvider, "groq"))
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("NEO4J_PASSWORD", "env-pass")

	settings := LoadSettings(store)

	assert.Equal(t, "env-key", settings.LLM.APIKey)
	assert.Equal(t, "env-pass", settings.Services.GraphPassword)
}
