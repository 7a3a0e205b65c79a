package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

type stubDispatcher struct {
	response   string
	err        error
	lastPrompt string
}

func (d *stubDispatcher) Dispatch(_ context.Context, prompt string) (string, error) {
	d.lastPrompt = prompt
	return d.response, d.err
}

func testProvider() Provider {
	return Provider{
		ID:         ProviderGroq,
		Enabled:    true,
		Model:      "llama-3.3-70b-versatile",
		WireFormat: WireFormatOpenAICompatible,
	}
}

func TestClientCategorizeEmailSuccess(t *testing.T) {
	dispatcher := &stubDispatcher{response: `{"category":"NotInterested","reasoning":"explicit opt-out","replies":["Understood."]}`}
	client := NewClient(testProvider(), dispatcher, NewPromptBuilder(utils.NewTextProcessor(nil), 0), zap.NewNop())

	email := &core.Email{From: "a@b.c", Subject: "re: outreach", Body: "unsubscribe"}
	result, err := client.CategorizeEmail(context.Background(), email)

	require.NoError(t, err)
	assert.Equal(t, core.CategoryNotInterested, result.Category)
	assert.Equal(t, core.SourceLLM, result.Source)
	assert.Equal(t, "groq", result.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", result.Model)
	assert.NotEmpty(t, result.ProcessingID)
	assert.False(t, result.CategorizedAt.IsZero())

	// The dispatcher must receive the rendered prompt, not the raw email.
	assert.Contains(t, dispatcher.lastPrompt, "Subject: re: outreach")
	assert.Contains(t, dispatcher.lastPrompt, "unsubscribe")
}

func TestClientWrapsDispatchFailureInProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	client := NewClient(testProvider(), &stubDispatcher{err: cause}, NewPromptBuilder(utils.NewTextProcessor(nil), 0), zap.NewNop())

	_, err := client.CategorizeEmail(context.Background(), &core.Email{})

	require.Error(t, err)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ProviderGroq, provErr.Provider)
	assert.ErrorIs(t, err, cause)
}

func TestClientGarbageResponseStillYieldsValidResult(t *testing.T) {
	// Malformed model output is absorbed by the parser, never surfaced as an
	// error.
	client := NewClient(testProvider(), &stubDispatcher{response: "total garbage"}, NewPromptBuilder(utils.NewTextProcessor(nil), 0), zap.NewNop())

	result, err := client.CategorizeEmail(context.Background(), &core.Email{})

	require.NoError(t, err)
	assert.Equal(t, core.DefaultCategory(), result.Category)
	require.NotEmpty(t, result.Replies)
}
