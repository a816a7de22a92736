// File: internal/llmclient/gemini_client_test.go
package llmclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testAnalyzerConfig(endpoint string) config.AnalyzerConfig {
	return config.AnalyzerConfig{
		Model:             "gemini-2.5-flash",
		APIKey:            "test-key",
		Endpoint:          endpoint,
		APITimeout:        5 * time.Second,
		Temperature:       0.1,
		MaxTokens:         1024,
		RequestsPerMinute: 6000, // Effectively unlimited so tests do not stall.
	}
}

func newTestClient(t *testing.T, endpoint string) *GeminiClient {
	t.Helper()
	client, err := NewGeminiClient(testAnalyzerConfig(endpoint), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"` + text + `"}],"role":"model"},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":5,"totalTokenCount":15}}`
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	cfg := testAnalyzerConfig("")
	cfg.APIKey = ""
	_, err := NewGeminiClient(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(candidateResponse("hello world")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	out, err := client.Generate(context.Background(), schemas.GenerationRequest{
		SystemPrompt: "You are a scanner.",
		UserPrompt:   "analyze this",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestGenerate_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(candidateResponse("recovered")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	out, err := client.Generate(context.Background(), schemas.GenerationRequest{UserPrompt: "retry me"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerate_PermanentOnAuthFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Generate(context.Background(), schemas.GenerationRequest{UserPrompt: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "auth failures must not be retried")
}

func TestGenerate_ContentBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[],"role":"model"},"finishReason":"SAFETY"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Generate(context.Background(), schemas.GenerationRequest{UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentBlocked))
}

func TestGenerate_ForceJSONSetsMimeType(t *testing.T) {
	payload := (&GeminiClient{config: testAnalyzerConfig("")}).buildRequestPayload(schemas.GenerationRequest{
		UserPrompt: "give me json",
		Options: schemas.GenerationOptions{
			ForceJSONFormat: true,
			Temperature:     0.2,
		},
	})

	assert.Equal(t, "application/json", payload.GenerationConfig.ResponseMimeType)
	assert.Equal(t, 0.2, payload.GenerationConfig.Temperature)
	assert.Equal(t, 1024, payload.GenerationConfig.MaxOutputTokens, "falls back to configured max tokens")
	require.Len(t, payload.Contents, 1)
	assert.Equal(t, "give me json", payload.Contents[0].Parts[0].Text)
	assert.Nil(t, payload.SystemInstruction)
}

func TestGenerate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("never seen")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Generate(ctx, schemas.GenerationRequest{UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
