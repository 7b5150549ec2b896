package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/richinex/fathom/llm"
)

// scriptedProvider returns canned responses in order and records what it saw.
type scriptedProvider struct {
	responses     []string
	calls         int
	conversations [][]llm.ChatMessage
	err           error
}

func (s *scriptedProvider) Name() string  { return "scripted" }
func (s *scriptedProvider) Model() string { return "scripted-model" }

func (s *scriptedProvider) Chat(ctx context.Context, messages []llm.ChatMessage) (llm.ChatResponse, error) {
	s.conversations = append(s.conversations, messages)
	if s.err != nil {
		return llm.ChatResponse{}, s.err
	}
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return llm.ChatResponse{Content: s.responses[idx]}, nil
}

func factoryFor(p llm.Provider) ProviderFactory {
	return func(provider, model string) (llm.Provider, error) {
		return p, nil
	}
}

func TestChatEngineSingleRound(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"running_summary": "summary one", "sources_gathered": ["https://a.com"]}`,
	}}
	eng := NewChatEngine(factoryFor(provider))

	result, err := eng.Research(context.Background(), Payload{Query: "topic", MaxLoops: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("expected 1 round, got %d", provider.calls)
	}
	if result["running_summary"] != "summary one" {
		t.Errorf("unexpected summary: %v", result["running_summary"])
	}
	if result["research_loop_count"] != 1 {
		t.Errorf("unexpected loop count: %v", result["research_loop_count"])
	}
	sources, ok := result["sources_gathered"].([]any)
	if !ok || len(sources) != 1 || sources[0] != "https://a.com" {
		t.Errorf("unexpected sources: %v", result["sources_gathered"])
	}
}

func TestChatEngineRefinesAcrossRounds(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"running_summary": "draft", "sources_gathered": ["https://a.com"]}`,
		`{"running_summary": "refined", "sources_gathered": ["https://a.com", "https://b.com"]}`,
		`{"running_summary": "final", "sources_gathered": ["https://b.com", "https://c.com"]}`,
	}}
	eng := NewChatEngine(factoryFor(provider))

	result, err := eng.Research(context.Background(), Payload{Query: "topic", MaxLoops: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls != 3 {
		t.Errorf("expected 3 rounds, got %d", provider.calls)
	}
	if result["running_summary"] != "final" {
		t.Errorf("expected last summary to win, got %v", result["running_summary"])
	}
	sources := result["sources_gathered"].([]any)
	want := []string{"https://a.com", "https://b.com", "https://c.com"}
	if len(sources) != len(want) {
		t.Fatalf("expected deduplicated sources %v, got %v", want, sources)
	}
	for i, s := range want {
		if sources[i] != s {
			t.Errorf("source %d: expected %q, got %v", i, s, sources[i])
		}
	}

	// Later rounds must see the refinement conversation growing.
	if len(provider.conversations[2]) <= len(provider.conversations[0]) {
		t.Error("expected conversation to accumulate across rounds")
	}
}

func TestChatEngineMinimumEffortSingleRound(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"running_summary": "quick answer", "sources_gathered": []}`,
	}}
	eng := NewChatEngine(factoryFor(provider))

	_, err := eng.Research(context.Background(), Payload{Query: "topic", MaxLoops: 10, MinimumEffort: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("expected minimum effort to force 1 round, got %d", provider.calls)
	}
}

func TestChatEngineZeroLoopsStillRunsOnce(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"running_summary": "answer", "sources_gathered": []}`,
	}}
	eng := NewChatEngine(factoryFor(provider))

	_, err := eng.Research(context.Background(), Payload{Query: "topic", MaxLoops: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 round for zero loops, got %d", provider.calls)
	}
}

func TestChatEngineNonJSONFallsBackToRawText(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Here is my answer in plain prose, ignoring the format.",
	}}
	eng := NewChatEngine(factoryFor(provider))

	result, err := eng.Research(context.Background(), Payload{Query: "topic", MaxLoops: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary := result["running_summary"].(string)
	if !strings.Contains(summary, "plain prose") {
		t.Errorf("expected raw text fallback, got %q", summary)
	}
}

func TestChatEngineUploadedContentReachesModel(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"running_summary": "x", "sources_gathered": []}`,
	}}
	eng := NewChatEngine(factoryFor(provider))

	_, err := eng.Research(context.Background(), Payload{
		Query:           "topic",
		MaxLoops:        1,
		UploadedContent: "=== File: notes.txt ===\nimportant facts",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, msg := range provider.conversations[0] {
		if strings.Contains(msg.Content, "important facts") {
			found = true
		}
	}
	if !found {
		t.Error("expected uploaded content in the conversation")
	}
}

func TestChatEngineProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("rate limited")}
	eng := NewChatEngine(factoryFor(provider))

	_, err := eng.Research(context.Background(), Payload{Query: "topic", MaxLoops: 2})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("expected wrapped provider error, got %q", err.Error())
	}
}

func TestChatEngineFactoryError(t *testing.T) {
	eng := NewChatEngine(func(provider, model string) (llm.Provider, error) {
		return nil, errors.New("no API key")
	})

	_, err := eng.Research(context.Background(), Payload{Query: "topic", Provider: "openai", MaxLoops: 1})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestChatEngineHonorsCancellation(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"running_summary": "x", "sources_gathered": []}`,
	}}
	eng := NewChatEngine(factoryFor(provider))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Research(ctx, Payload{Query: "topic", MaxLoops: 3})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("expected no rounds after cancellation, got %d", provider.calls)
	}
}
