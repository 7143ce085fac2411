package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaudeClientSend(t *testing.T) {
	var gotRequest map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_test",
			"content": [{"type": "text", "text": "hello back"}],
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	client := newClaudeClient("test-key")
	client.baseURL = server.URL

	text, usage, err := client.Send(context.Background(), "claude-3-5-haiku-20241022", 1024, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello back", text)
	assert.Equal(t, Usage{InputTokens: 10, OutputTokens: 5}, usage)
	assert.Equal(t, "claude-3-5-haiku-20241022", gotRequest["model"])
	assert.Equal(t, float64(1024), gotRequest["max_tokens"])
}

func TestClaudeClientNoAPIKey(t *testing.T) {
	client := newClaudeClient("")

	_, _, err := client.Send(context.Background(), "claude-3-5-haiku-20241022", 1024, "hello")
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestClaudeClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	client := newClaudeClient("test-key")
	client.baseURL = server.URL

	_, _, err := client.Send(context.Background(), "claude-3-5-haiku-20241022", 1024, "hello")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, ProviderClaude, apiErr.Provider)
	assert.True(t, IsRetryable(err))
}

func TestClaudeClientMalformedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := newClaudeClient("test-key")
	client.baseURL = server.URL

	_, _, err := client.Send(context.Background(), "claude-3-5-haiku-20241022", 1024, "hello")
	assert.True(t, errors.Is(err, ErrMalformedReply))
	assert.False(t, IsRetryable(err))
}

func TestClaudeClientEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "msg_test", "content": []}`))
	}))
	defer server.Close()

	client := newClaudeClient("test-key")
	client.baseURL = server.URL

	_, _, err := client.Send(context.Background(), "claude-3-5-haiku-20241022", 1024, "hello")
	assert.True(t, errors.Is(err, ErrEmptyResponse))
	assert.True(t, IsRetryable(err))
}

func TestGeminiClientSend(t *testing.T) {
	var gotRequest map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "flash reply"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 7, "totalTokenCount": 19}
		}`))
	}))
	defer server.Close()

	client := newGeminiClient("test-key")
	client.baseURL = server.URL

	text, usage, err := client.Send(context.Background(), "gemini-2.0-flash", 2048, "hello")
	require.NoError(t, err)
	assert.Equal(t, "flash reply", text)
	assert.Equal(t, Usage{InputTokens: 12, OutputTokens: 7}, usage)

	config, ok := gotRequest["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2048), config["maxOutputTokens"])
}

func TestGeminiClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newGeminiClient("test-key")
	client.baseURL = server.URL

	_, _, err := client.Send(context.Background(), "gemini-2.0-flash", 2048, "hello")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ProviderGemini, apiErr.Provider)
	assert.True(t, IsRetryable(err))
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := newGeminiClient("test-key")
	client.baseURL = server.URL

	_, _, err := client.Send(context.Background(), "gemini-2.0-flash", 2048, "hello")
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}
