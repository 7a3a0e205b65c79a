package llm

// ProviderID identifies one configured AI backend.
type ProviderID string

const (
	ProviderGroq       ProviderID = "groq"
	ProviderGemini     ProviderID = "gemini"
	ProviderOpenRouter ProviderID = "openrouter"
	ProviderOllama     ProviderID = "ollama"
	ProviderOpenAI     ProviderID = "openai"
	ProviderAnthropic  ProviderID = "anthropic"
)

// WireFormat is the closed set of request/response protocols a backend can
// speak. Adding a backend with a new protocol means adding a variant here and
// handling it in every switch over WireFormat.
type WireFormat int

const (
	WireFormatOpenAICompatible WireFormat = iota
	WireFormatAnthropic
	WireFormatOllamaStyle
)

func (f WireFormat) String() string {
	switch f {
	case WireFormatOpenAICompatible:
		return "openai-compatible"
	case WireFormatAnthropic:
		return "anthropic"
	case WireFormatOllamaStyle:
		return "ollama"
	default:
		return "unknown"
	}
}

// Provider holds the immutable configuration for one backend. Instances are
// created once at startup and never mutated afterwards.
type Provider struct {
	ID          ProviderID
	Enabled     bool
	Credential  string
	BaseAddress string
	RequestPath string
	Model       string
	WireFormat  WireFormat
}

// PreferenceOrder fixes which enabled backend wins when several are
// configured. The order favors backends believed to have the most generous
// free-tier quota; changing it means editing this list, not configuration.
var PreferenceOrder = []ProviderID{
	ProviderGroq,
	ProviderGemini,
	ProviderOpenRouter,
	ProviderOllama,
	ProviderOpenAI,
	ProviderAnthropic,
}

// Registry holds every known provider configuration. It is populated once at
// startup and read-only afterwards, so it is safe for unlimited concurrent
// readers.
type Registry struct {
	providers map[ProviderID]Provider
}

// NewRegistry creates a registry from provider configurations. Declaration
// order is irrelevant; selection follows PreferenceOrder only.
func NewRegistry(providers []Provider) *Registry {
	byID := make(map[ProviderID]Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}
	return &Registry{providers: byID}
}

// Get looks up a provider by ID.
func (r *Registry) Get(id ProviderID) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// SelectActive returns the first enabled provider in PreferenceOrder, or
// ok=false when none is enabled. Pure function of the immutable registry.
func (r *Registry) SelectActive() (Provider, bool) {
	for _, id := range PreferenceOrder {
		if p, ok := r.providers[id]; ok && p.Enabled {
			return p, true
		}
	}
	return Provider{}, false
}

// ProviderStatus is the diagnostics view of one provider. It deliberately
// carries no credential material.
type ProviderStatus struct {
	ID      ProviderID `json:"id"`
	Enabled bool       `json:"enabled"`
	Model   string     `json:"model"`
	Active  bool       `json:"active"`
}

// Status reports every known provider in preference order, flagging the one
// that SelectActive would pick.
func (r *Registry) Status() []ProviderStatus {
	active, hasActive := r.SelectActive()
	statuses := make([]ProviderStatus, 0, len(PreferenceOrder))
	for _, id := range PreferenceOrder {
		p, ok := r.providers[id]
		if !ok {
			continue
		}
		statuses = append(statuses, ProviderStatus{
			ID:      p.ID,
			Enabled: p.Enabled,
			Model:   p.Model,
			Active:  hasActive && p.ID == active.ID,
		})
	}
	return statuses
}
