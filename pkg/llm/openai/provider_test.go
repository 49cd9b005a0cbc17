package openai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/mentor-ai/pkg/llm"
	"github.com/kart-io/mentor-ai/pkg/llm/openai"
	"github.com/kart-io/mentor-ai/pkg/utils/json"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*openai.Provider, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	cfg := openai.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.APIKey = "test-key"
	cfg.Timeout = 5 * time.Second
	cfg.MaxRetries = 0
	return openai.NewProviderWithConfig(cfg), srv.Close
}

func TestNewProviderRequiresAPIKey(t *testing.T) {
	_, err := openai.NewProvider(map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestEmbedRestoresProviderOrder(t *testing.T) {
	// The API is free to return batch items in any order; the provider must
	// place each vector by its reported index.
	provider, closeFn := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[
			{"index":2,"embedding":[0.3]},
			{"index":0,"embedding":[0.1]},
			{"index":1,"embedding":[0.2]}
		]}`))
	})
	defer closeFn()

	got, err := provider.Embed(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []float32{0.1}, got[0])
	assert.Equal(t, []float32{0.2}, got[1])
	assert.Equal(t, []float32{0.3}, got[2])
}

func TestEmbedIncompleteBatchFails(t *testing.T) {
	provider, closeFn := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[0.1]}]}`))
	})
	defer closeFn()

	_, err := provider.Embed(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing embedding")
}

func TestEmbedEmptyInput(t *testing.T) {
	provider, closeFn := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty input")
	})
	defer closeFn()

	got, err := provider.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGenerateBuildsSystemAndUserMessages(t *testing.T) {
	provider, closeFn := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		var req struct {
			Messages []llm.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
		assert.Equal(t, "persona", req.Messages[0].Content)
		assert.Equal(t, llm.RoleUser, req.Messages[1].Role)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	})
	defer closeFn()

	got, err := provider.Generate(context.Background(), "question", "persona")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestChatNoChoices(t *testing.T) {
	provider, closeFn := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	defer closeFn()

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.Error(t, err)
}
