package ai

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

func TestCreateEmbeddingService_NilSettings(t *testing.T) {
	svc, err := CreateEmbeddingService(nil)

	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_Unconfigured(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{})

	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  "http://localhost:11434",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
}

func TestCreateEmbeddingService_OpenAI(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
		APIKey:   "test-key",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestCreateEmbeddingService_GeminiRejected(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderGemini,
		APIKey:   "test-key",
	})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "does not support embeddings")
}

func TestCreateLLMService_NilSettings(t *testing.T) {
	svc, err := CreateLLMService(nil)

	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateLLMService_Ollama(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "llama3.2", svc.ModelName())
}

func TestCreateLLMService_OpenAI(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}

func TestCreateLLMService_Gemini(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderGemini,
		Model:    "gemini-2.0-flash",
		APIKey:   "test-key",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "gemini-2.0-flash", svc.ModelName())
}

func TestCreateAndValidateLLMService_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
		BaseURL:  server.URL,
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	svc.Close()
}

func TestCreateAndValidateLLMService_Unreachable(t *testing.T) {
	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
		BaseURL:  "http://127.0.0.1:1",
	})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, domain.ErrLLMUnavailable))
}

func TestCreateAndValidateEmbeddingService_Unconfigured(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{})

	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateAndValidateEmbeddingService_Unreachable(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  "http://127.0.0.1:1",
	})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
}

func TestValidateLLMConfig_Unconfigured(t *testing.T) {
	require.NoError(t, ValidateLLMConfig(nil))
	require.NoError(t, ValidateLLMConfig(&domain.LLMSettings{}))
}

func TestValidateEmbeddingConfig_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := ValidateEmbeddingConfig(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  server.URL,
	})

	require.NoError(t, err)
}
