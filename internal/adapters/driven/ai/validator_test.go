package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

func TestNewConfigValidator(t *testing.T) {
	v := NewConfigValidator()
	require.NotNil(t, v)
}

func TestConfigValidator_ValidateEmbedding_Unconfigured(t *testing.T) {
	v := NewConfigValidator()

	require.NoError(t, v.ValidateEmbedding(nil))
	require.NoError(t, v.ValidateEmbedding(&domain.EmbeddingSettings{}))
}

func TestConfigValidator_ValidateLLM_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	v := NewConfigValidator()

	err := v.ValidateLLM(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
		BaseURL:  server.URL,
	})
	require.NoError(t, err)
}

func TestConfigValidator_ValidateLLM_Unreachable(t *testing.T) {
	v := NewConfigValidator()

	err := v.ValidateLLM(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
		BaseURL:  "http://127.0.0.1:1",
	})
	assert.Error(t, err)
}
