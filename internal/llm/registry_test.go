package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectActiveFollowsPreferenceOrder(t *testing.T) {
	// openai is declared first, but groq comes earlier in the preference
	// order and must win.
	registry := NewRegistry([]Provider{
		{ID: ProviderOpenAI, Enabled: true, Model: "gpt-4o-mini"},
		{ID: ProviderGroq, Enabled: true, Model: "llama-3.3-70b-versatile"},
	})

	active, ok := registry.SelectActive()

	require.True(t, ok)
	assert.Equal(t, ProviderGroq, active.ID)
}

func TestSelectActiveSkipsDisabledProviders(t *testing.T) {
	registry := NewRegistry([]Provider{
		{ID: ProviderGroq, Enabled: false},
		{ID: ProviderGemini, Enabled: false},
		{ID: ProviderAnthropic, Enabled: true, Model: "claude-3-5-haiku-20241022"},
	})

	active, ok := registry.SelectActive()

	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, active.ID)
}

func TestSelectActiveWithNoEnabledProvider(t *testing.T) {
	registry := NewRegistry([]Provider{
		{ID: ProviderGroq},
		{ID: ProviderOpenAI},
	})

	_, ok := registry.SelectActive()
	assert.False(t, ok)

	_, ok = NewRegistry(nil).SelectActive()
	assert.False(t, ok)
}

func TestStatusMarksOnlyTheActiveProvider(t *testing.T) {
	registry := NewRegistry([]Provider{
		{ID: ProviderOpenAI, Enabled: true, Model: "gpt-4o-mini"},
		{ID: ProviderOllama, Enabled: true, Model: "llama3.2"},
		{ID: ProviderAnthropic, Enabled: false, Model: "claude-3-5-haiku-20241022"},
	})

	statuses := registry.Status()

	require.Len(t, statuses, 3)
	// Status lists providers in preference order, not declaration order.
	assert.Equal(t, ProviderOllama, statuses[0].ID)
	assert.Equal(t, ProviderOpenAI, statuses[1].ID)
	assert.Equal(t, ProviderAnthropic, statuses[2].ID)

	for _, s := range statuses {
		assert.Equal(t, s.ID == ProviderOllama, s.Active, "provider %s", s.ID)
	}
}

func TestStatusNeverExposesCredentials(t *testing.T) {
	registry := NewRegistry([]Provider{
		{ID: ProviderGroq, Enabled: true, Credential: "sk-super-secret", Model: "llama-3.3-70b-versatile"},
	})

	encoded, err := json.Marshal(registry.Status())

	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "sk-super-secret")
}

func TestPreferenceOrderCoversEveryKnownProvider(t *testing.T) {
	seen := make(map[ProviderID]bool)
	for _, id := range PreferenceOrder {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
	for _, id := range []ProviderID{ProviderGroq, ProviderGemini, ProviderOpenRouter, ProviderOllama, ProviderOpenAI, ProviderAnthropic} {
		assert.True(t, seen[id], "missing %s", id)
	}
}
