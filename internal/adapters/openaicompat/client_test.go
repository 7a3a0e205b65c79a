package openaicompat

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
		ID:          llm.ProviderGroq,
		Credential:  "test-key",
		BaseAddress: serverURL,
		RequestPath: "/v1/chat/completions",
		Model:       "llama-3.3-70b-versatile",
		WireFormat:  llm.WireFormatOpenAICompatible,
	}, zap.NewNop())
}

func TestDispatchSendsOpenAIWireFormat(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"category\":\"Spam\"}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Dispatch(context.Background(), "categorize this")

	require.NoError(t, err)
	assert.Equal(t, `{"category":"Spam"}`, text)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)

	assert.Equal(t, "llama-3.3-70b-versatile", gotBody["model"])
	assert.Equal(t, float64(1000), gotBody["max_tokens"])
	assert.InDelta(t, 0.7, gotBody["temperature"], 0.001)
	messages, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "categorize this", msg["content"])
}

func TestDispatchGeminiCompatPath(t *testing.T) {
	// Gemini's compatibility endpoint has its request path without the /v1
	// segment; the derived base URL must still hit the right path.
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(llm.Provider{
		ID:          llm.ProviderGemini,
		Credential:  "k",
		BaseAddress: server.URL + "/v1beta/openai",
		RequestPath: "/chat/completions",
		Model:       "gemini-2.0-flash",
		WireFormat:  llm.WireFormatOpenAICompatible,
	}, zap.NewNop())

	text, err := client.Dispatch(context.Background(), "x")

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "/v1beta/openai/chat/completions", gotPath)
}

func TestDispatchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Dispatch(context.Background(), "x")

	assert.Error(t, err)
}

func TestDispatchEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Dispatch(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion response")
}
