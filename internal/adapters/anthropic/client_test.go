package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/llm"
)

func newTestClient(serverURL string) *Client {
	return NewClient(llm.Provider{
		ID:          llm.ProviderAnthropic,
		Credential:  "test-key",
		BaseAddress: serverURL,
		RequestPath: "/v1/messages",
		Model:       "claude-3-5-haiku-20241022",
		WireFormat:  llm.WireFormatAnthropic,
	}, zap.NewNop())
}

func TestDispatchSendsAnthropicWireFormat(t *testing.T) {
	var gotPath, gotAPIKey, gotVersion string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"{\"category\":\"Spam\"}"}]}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Dispatch(context.Background(), "categorize this")

	require.NoError(t, err)
	assert.Equal(t, `{"category":"Spam"}`, text)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "2023-06-01", gotVersion)

	assert.Equal(t, "claude-3-5-haiku-20241022", gotBody["model"])
	assert.Equal(t, float64(1000), gotBody["max_tokens"])
	messages, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "categorize this", msg["content"])
}

func TestDispatchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Dispatch(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDispatchEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Dispatch(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestDispatchConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).Dispatch(context.Background(), "x")

	assert.Error(t, err)
}
