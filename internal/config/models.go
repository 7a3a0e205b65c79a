package config

import (
	"github.com/mikey/mail-triage/internal/llm"
)

// defaultOllamaBaseURL is applied when ollama is force-enabled without an
// explicit base address.
const defaultOllamaBaseURL = "http://localhost:11434"

// providerSpecs fixes, per provider, the wire format and request path plus
// whether enablement derives from a credential or a base address. Defaults
// for base_url and model live in setDefaults.
var providerSpecs = []struct {
	id           llm.ProviderID
	wire         llm.WireFormat
	requestPath  string
	credentialed bool
}{
	{id: llm.ProviderGroq, wire: llm.WireFormatOpenAICompatible, requestPath: "/v1/chat/completions", credentialed: true},
	{id: llm.ProviderGemini, wire: llm.WireFormatOpenAICompatible, requestPath: "/chat/completions", credentialed: true},
	{id: llm.ProviderOpenRouter, wire: llm.WireFormatOpenAICompatible, requestPath: "/v1/chat/completions", credentialed: true},
	{id: llm.ProviderOllama, wire: llm.WireFormatOllamaStyle, requestPath: "/api/chat", credentialed: false},
	{id: llm.ProviderOpenAI, wire: llm.WireFormatOpenAICompatible, requestPath: "/v1/chat/completions", credentialed: true},
	{id: llm.ProviderAnthropic, wire: llm.WireFormatAnthropic, requestPath: "/v1/messages", credentialed: true},
}

// Providers assembles the immutable registry entries from configuration.
// A credentialed provider is enabled by a non-empty api_key; ollama is
// enabled by an explicit base_url. The per-provider enabled flag forces
// either on.
func (c *Config) Providers() []llm.Provider {
	providers := make([]llm.Provider, 0, len(providerSpecs))
	for _, spec := range providerSpecs {
		key := string(spec.id)
		p := llm.Provider{
			ID:          spec.id,
			Credential:  c.GetString(key + ".api_key"),
			BaseAddress: c.GetString(key + ".base_url"),
			Model:       c.GetString(key + ".model"),
			RequestPath: spec.requestPath,
			WireFormat:  spec.wire,
		}

		if spec.credentialed {
			p.Enabled = c.GetBool(key+".enabled") || p.Credential != ""
		} else {
			p.Enabled = c.GetBool(key+".enabled") || p.BaseAddress != ""
			if p.BaseAddress == "" {
				p.BaseAddress = defaultOllamaBaseURL
			}
		}

		providers = append(providers, p)
	}
	return providers
}
