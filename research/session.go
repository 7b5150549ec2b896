// Package research implements the research session orchestration core:
// resolving raw UI input into an immutable request, ingesting uploaded
// documents, bridging to the external research engine, and normalizing its
// loosely structured result.
//
// Every value here is constructed fresh per request and passed explicitly
// through the pipeline. Nothing is cached or shared across requests; in
// particular the session configuration is never written to ambient state,
// so concurrent sessions cannot read each other's provider or model.
package research

import (
	"fmt"

	"github.com/richinex/fathom/llm"
)

// Loop count bounds for a research session.
const (
	MinLoops = 1
	MaxLoops = 20
)

// SessionConfiguration is the validated, immutable configuration for one
// research session. Owned exclusively by the request it was built for.
type SessionConfiguration struct {
	Provider        string
	Model           string
	MaxLoops        int
	ExtraEffort     bool
	MinimumEffort   bool
	SteeringEnabled bool
}

// ResolveSessionConfig validates and normalizes raw UI input into a
// SessionConfiguration.
//
// The loop count is clamped into [MinLoops, MaxLoops]. An unknown provider
// is fatal. An unknown model is recoverable: the provider's first catalog
// model is substituted and a warning returned. MinimumEffort forces a
// single loop and overrides ExtraEffort.
func ResolveSessionConfig(provider, model string, maxLoops int, extraEffort, minimumEffort, steeringEnabled bool) (SessionConfiguration, []string, error) {
	if !llm.KnownProvider(provider) {
		return SessionConfiguration{}, nil, &UnknownProviderError{Provider: provider}
	}

	var warnings []string

	if !llm.HasModel(provider, model) {
		substitute := llm.DefaultModelFor(provider)
		warnings = append(warnings, fmt.Sprintf(
			"model %q is not available for provider %q; using %q instead",
			model, provider, substitute))
		model = substitute
	}

	if maxLoops < MinLoops {
		maxLoops = MinLoops
	}
	if maxLoops > MaxLoops {
		maxLoops = MaxLoops
	}

	if minimumEffort {
		maxLoops = MinLoops
		extraEffort = false
	}

	return SessionConfiguration{
		Provider:        provider,
		Model:           model,
		MaxLoops:        maxLoops,
		ExtraEffort:     extraEffort,
		MinimumEffort:   minimumEffort,
		SteeringEnabled: steeringEnabled,
	}, warnings, nil
}
