// Chat-backed research engine.
//
// A fallback adapter for environments without a research service: it drives
// a single LLM provider through iterative refine-summary rounds. It performs
// no web search and no agent specialization; sources are whatever the model
// volunteers from the supplied material.

package engine

import (
	"context"
	"fmt"
	"strings"

	jsonutil "github.com/richinex/fathom/internal/json"
	"github.com/richinex/fathom/llm"
)

const chatSystemPrompt = `You are a research analyst. Produce a thorough,
well-structured research summary for the user's topic, citing any source
URLs you are confident about.

You MUST respond in this EXACT JSON format:
{
  "running_summary": "the full report text in markdown",
  "sources_gathered": ["https://...", ...]
}

Respond with valid JSON only. No extra text.`

// chatRound is the JSON shape the model is asked to return each round.
type chatRound struct {
	RunningSummary  string   `json:"running_summary"`
	SourcesGathered []string `json:"sources_gathered"`
}

// ProviderFactory builds a chat client for the provider and model named in
// a payload. Clients are constructed per request so configuration stays
// request-scoped.
type ProviderFactory func(provider, model string) (llm.Provider, error)

// ChatEngine implements Engine on top of a single chat provider.
type ChatEngine struct {
	factory ProviderFactory
}

// NewChatEngine creates a chat-backed engine. The factory is consulted once
// per research call with the payload's provider and model.
func NewChatEngine(factory ProviderFactory) *ChatEngine {
	return &ChatEngine{factory: factory}
}

// Research runs up to MaxLoops refine rounds and returns the final summary
// as a result mapping compatible with the research service's shape.
func (e *ChatEngine) Research(ctx context.Context, payload Payload) (Result, error) {
	provider, err := e.factory(payload.Provider, payload.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", payload.Provider, err)
	}

	rounds := payload.MaxLoops
	if rounds < 1 {
		rounds = 1
	}
	if payload.MinimumEffort {
		rounds = 1
	}

	task := fmt.Sprintf("Research topic: %s", payload.Query)
	if payload.ExtraEffort {
		task += "\n\nBe exhaustive: cover background, current state, open problems and outlook."
	}
	if payload.UploadedContent != "" {
		task += fmt.Sprintf("\n\nUse the following uploaded material as primary context:\n\n%s", payload.UploadedContent)
	}

	conversation := []llm.ChatMessage{
		llm.SystemMessage(chatSystemPrompt),
		llm.UserMessage(task),
	}

	var summary string
	var sources []string
	loops := 0

	for i := 0; i < rounds; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, err := provider.Chat(ctx, conversation)
		if err != nil {
			return nil, fmt.Errorf("research round %d failed: %w", i+1, err)
		}
		loops++

		round, err := jsonutil.ExtractJSONFromResponse[chatRound](resp.Content)
		if err != nil {
			// Model ignored the format - use the raw text as the summary.
			round = chatRound{RunningSummary: strings.TrimSpace(resp.Content)}
		}

		if round.RunningSummary != "" {
			summary = round.RunningSummary
		}
		sources = mergeSources(sources, round.SourcesGathered)

		if i+1 < rounds {
			conversation = append(conversation,
				llm.AssistantMessage(resp.Content),
				llm.UserMessage("Identify the weakest areas of your summary, then respond with an improved version in the same JSON format."),
			)
		}
	}

	gathered := make([]any, len(sources))
	for i, s := range sources {
		gathered[i] = s
	}

	return Result{
		"running_summary":     summary,
		"sources_gathered":    gathered,
		"research_loop_count": loops,
	}, nil
}

// mergeSources appends new sources, preserving order and dropping duplicates.
func mergeSources(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	for _, s := range incoming {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		existing = append(existing, s)
	}
	return existing
}

// Verify ChatEngine implements Engine
var _ Engine = (*ChatEngine)(nil)
