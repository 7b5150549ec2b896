// LLM Provider interface - the abstract interface for chat providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import (
	"context"
	"fmt"
)

// Provider defines the abstract interface for LLM chat providers.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Chat sends a chat completion request.
	Chat(ctx context.Context, messages []ChatMessage) (ChatResponse, error)
}

// OpenAI-compatible API endpoints for providers without a dedicated SDK.
const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	sambanovaBaseURL = "https://api.sambanova.ai/v1"
)

// NewProvider creates a chat client for a catalog provider.
// Returns an error for providers outside the catalog.
func NewProvider(provider, model, apiKey string) (Provider, error) {
	switch provider {
	case "openai":
		return NewOpenAIProvider(apiKey, model), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey, model), nil
	case "google":
		return NewGeminiProvider(apiKey, model), nil
	case "groq":
		return NewCompatProvider("groq", groqBaseURL, apiKey, model), nil
	case "sambanova":
		return NewCompatProvider("sambanova", sambanovaBaseURL, apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", provider)
	}
}
