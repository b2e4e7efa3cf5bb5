package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
)

func TestNewLLMService(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewLLMService(Config{})
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		s, err := NewLLMService(Config{APIKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, s.ModelName())
	})
}

func TestGenerate(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "the answer"}}}},
			},
		})
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := s.Generate(context.Background(), "the prompt", driven.GenerateOptions{
		MaxTokens:   500,
		Temperature: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)

	// An explicit zero temperature must be sent, not omitted.
	require.NotNil(t, captured.GenerationConfig)
	require.NotNil(t, captured.GenerationConfig.Temperature)
	assert.Equal(t, 0.0, *captured.GenerationConfig.Temperature)
	assert.Equal(t, 500, captured.GenerationConfig.MaxOutputTokens)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "the prompt", captured.Contents[0].Parts[0].Text)
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "model overloaded", "status": "UNAVAILABLE"},
		})
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	assert.Error(t, err)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.LLMService = (*LLMService)(nil)
}
