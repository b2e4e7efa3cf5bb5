package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/storage/memory"
	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// mockAIValidator records validation calls and returns configured errors.
type mockAIValidator struct {
	embedErr      error
	llmErr        error
	embedSettings *domain.EmbeddingSettings
	llmSettings   *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	m.embedSettings = config
	return m.embedErr
}

func (m *mockAIValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.llmSettings = config
	return m.llmErr
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, 500, settings.Chunking.Size)
	assert.Equal(t, 100, settings.Chunking.Overlap)
	assert.False(t, settings.Chunking.CrossPage)
	assert.Equal(t, 5, settings.Retrieval.TopK)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("llm.provider", "gemini")
	_ = store.Set("chunking.size", 800)
	_ = store.Set("retrieval.top_k", 8)

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, domain.AIProviderGemini, settings.LLM.Provider)
	assert.Equal(t, 800, settings.Chunking.Size)
	assert.Equal(t, 8, settings.Retrieval.TopK)
}

func TestSettingsService_Get_InvalidProviderReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderGemini,
			Model:    "gemini-2.0-flash",
			APIKey:   "test-key",
		},
		Chunking: domain.ChunkingSettings{
			Size:      600,
			Overlap:   120,
			CrossPage: true,
		},
		Retrieval: domain.RetrievalSettings{
			TopK: 7,
		},
	}

	require.NoError(t, service.Save(settings))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.Embedding.Provider, loaded.Embedding.Provider)
	assert.Equal(t, settings.Embedding.Model, loaded.Embedding.Model)
	assert.Equal(t, settings.LLM.Provider, loaded.LLM.Provider)
	assert.Equal(t, settings.LLM.APIKey, loaded.LLM.APIKey)
	assert.Equal(t, 600, loaded.Chunking.Size)
	assert.Equal(t, 120, loaded.Chunking.Overlap)
	assert.True(t, loaded.Chunking.CrossPage)
	assert.Equal(t, 7, loaded.Retrieval.TopK)
}

func TestSettingsService_SetEmbeddingProvider_Ollama(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOllama, "", "")
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
}

func TestSettingsService_SetEmbeddingProvider_OpenAIRequiresKey(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestSettingsService_SetEmbeddingProvider_GeminiRejected(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetEmbeddingProvider(domain.AIProviderGemini, "", "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support embeddings")
}

func TestSettingsService_SetEmbeddingProvider_InvalidProvider(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetEmbeddingProvider(domain.AIProvider("bogus"), "", "")
	require.Error(t, err)
}

func TestSettingsService_SetLLMProvider_DefaultsModel(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetLLMProvider(domain.AIProviderGemini, "", "secret")
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGemini, settings.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", settings.LLM.Model)
	assert.Equal(t, "secret", settings.LLM.APIKey)
	assert.Empty(t, settings.LLM.BaseURL)
}

func TestSettingsService_SetLLMProvider_CustomModel(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetLLMProvider(domain.AIProviderOllama, "mistral", "")
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "mistral", settings.LLM.Model)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)
}

func TestSettingsService_Validate_Unconfigured(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding provider")
}

func TestSettingsService_Validate_MissingLLM(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))

	err := service.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM provider")
}

func TestSettingsService_Validate_Configured(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))
	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))

	require.NoError(t, service.Validate())
}

func TestSettingsService_ValidateEmbeddingConfig(t *testing.T) {
	store := memory.NewConfigStore()
	validator := &mockAIValidator{}
	service := NewSettingsService(store, validator)
	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))

	require.NoError(t, service.ValidateEmbeddingConfig())
	require.NotNil(t, validator.embedSettings)
	assert.Equal(t, domain.AIProviderOllama, validator.embedSettings.Provider)
}

func TestSettingsService_ValidateLLMConfig_Error(t *testing.T) {
	store := memory.NewConfigStore()
	validator := &mockAIValidator{llmErr: errors.New("connection refused")}
	service := NewSettingsService(store, validator)

	err := service.ValidateLLMConfig()
	require.Error(t, err)
}

func TestSettingsService_ValidateConfig_NilValidator(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NoError(t, service.ValidateEmbeddingConfig())
	require.NoError(t, service.ValidateLLMConfig())
}

func TestSettingsService_GetDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	defaults := service.GetDefaults()
	assert.Equal(t, domain.DefaultAppSettings(), defaults)
}
