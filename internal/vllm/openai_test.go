package vllm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longevity-genie/cell2sentence-mcp/internal/config"
)

func testConfig(baseURL string) *config.VLLMConfig {
	return &config.VLLMConfig{
		BaseURL: baseURL,
		Model:   "test-model",
		APIKey:  "EMPTY",
		Timeout: 5 * time.Second,
	}
}

func completionResponse(text string) string {
	return `{
		"id": "cmpl-1",
		"object": "text_completion",
		"created": 1,
		"model": "test-model",
		"choices": [{"index": 0, "text": ` + jsonString(text) + `, "finish_reason": "stop"}]
	}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestCompleteRequestShape(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("  42.5 years  ")))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	raw, err := client.Complete(context.Background(), "some prompt", GenerationParams{
		MaxTokens:   20,
		Temperature: 0.0,
		TopP:        1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "42.5 years", raw, "candidate text is trimmed")

	assert.Equal(t, "test-model", body["model"])
	assert.Equal(t, "some prompt", body["prompt"])
	assert.Equal(t, float64(20), body["max_tokens"])
	assert.Equal(t, float64(0), body["temperature"])
	assert.Equal(t, float64(1), body["top_p"])
	assert.Equal(t, float64(1), body["n"])
	assert.Equal(t, []any{"<ctrl100>", "<end_of_turn>", "<eos>"}, body["stop"])
}

func TestCompleteUpstreamError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt", DefaultGenerationParams())
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusServiceUnavailable, ue.Status)
	assert.Equal(t, 1, calls, "no retries")
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("42")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 200 * time.Millisecond

	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt", DefaultGenerationParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"text_completion","created":1,"model":"test-model","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt", DefaultGenerationParams())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"model-a","object":"model","created":1,"owned_by":"vllm"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	ids, err := client.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"model-a"}, ids)
}

func TestNewClientEmptyBaseURL(t *testing.T) {
	_, err := NewClient(&config.VLLMConfig{})
	assert.Error(t, err)
}
