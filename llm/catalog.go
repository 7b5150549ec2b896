// Provider and model catalog.
//
// The catalog is the single source of truth for which providers and models a
// research session may select. Order matters: the first model of a provider
// is its substitution default when an unknown model is requested.

package llm

// catalogEntry pairs a provider with its supported models.
type catalogEntry struct {
	provider string
	models   []string
}

var catalog = []catalogEntry{
	{provider: "openai", models: []string{
		"o4-mini",
		"o4-mini-high",
		"o3-mini",
		"o3-mini-reasoning",
		"gpt-4o",
	}},
	{provider: "anthropic", models: []string{
		"claude-sonnet-4",
		"claude-sonnet-4-thinking",
		"claude-3-7-sonnet",
		"claude-3-7-sonnet-thinking",
	}},
	{provider: "google", models: []string{
		"gemini-2.5-pro",
		"gemini-1.5-pro-latest",
		"gemini-1.5-flash-latest",
	}},
	{provider: "groq", models: []string{
		"deepseek-r1-distill-llama-70b",
		"llama-3.3-70b-versatile",
		"llama3-70b-8192",
	}},
	{provider: "sambanova", models: []string{
		"DeepSeek-V3-0324",
	}},
}

func lookup(provider string) *catalogEntry {
	for i := range catalog {
		if catalog[i].provider == provider {
			return &catalog[i]
		}
	}
	return nil
}

// Providers returns all catalog providers in declaration order.
func Providers() []string {
	names := make([]string, len(catalog))
	for i, entry := range catalog {
		names[i] = entry.provider
	}
	return names
}

// KnownProvider reports whether the provider is in the catalog.
func KnownProvider(provider string) bool {
	return lookup(provider) != nil
}

// ModelsFor returns a copy of the provider's model list, or nil for an
// unknown provider.
func ModelsFor(provider string) []string {
	entry := lookup(provider)
	if entry == nil {
		return nil
	}
	models := make([]string, len(entry.models))
	copy(models, entry.models)
	return models
}

// HasModel reports whether the model belongs to the provider.
func HasModel(provider, model string) bool {
	entry := lookup(provider)
	if entry == nil {
		return false
	}
	for _, m := range entry.models {
		if m == model {
			return true
		}
	}
	return false
}

// DefaultModelFor returns the provider's first catalog model, or "" for an
// unknown provider.
func DefaultModelFor(provider string) string {
	entry := lookup(provider)
	if entry == nil || len(entry.models) == 0 {
		return ""
	}
	return entry.models[0]
}
