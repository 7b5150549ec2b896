// OpenAI-compatible provider implementation using go-openai library.
//
// Groq and SambaNova expose the OpenAI Chat Completions API under their
// own base URLs, so a single client covers both.

package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// CompatProvider implements the Provider interface for OpenAI-compatible APIs.
type CompatProvider struct {
	client *openai.Client
	name   string
	model  string
}

// NewCompatProvider creates a provider for an OpenAI-compatible endpoint.
func NewCompatProvider(name, baseURL, apiKey, model string) *CompatProvider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &CompatProvider{
		client: openai.NewClientWithConfig(config),
		name:   name,
		model:  model,
	}
}

// Name returns the provider name.
func (p *CompatProvider) Name() string {
	return p.name
}

// Model returns the current model.
func (p *CompatProvider) Model() string {
	return p.model
}

// Chat sends a chat completion request.
func (p *CompatProvider) Chat(ctx context.Context, messages []ChatMessage) (ChatResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: convertToOpenAIMessages(messages),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("chat completion failed: %w", err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	usage := &TokenUsage{
		PromptTokens:     uint32(resp.Usage.PromptTokens),
		CompletionTokens: uint32(resp.Usage.CompletionTokens),
		TotalTokens:      uint32(resp.Usage.TotalTokens),
	}

	return ChatResponse{Content: content, Usage: usage}, nil
}

// Verify CompatProvider implements Provider
var _ Provider = (*CompatProvider)(nil)
