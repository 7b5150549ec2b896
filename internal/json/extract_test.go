package json

import (
	"strings"
	"testing"
)

type roundPayload struct {
	RunningSummary  string   `json:"running_summary"`
	SourcesGathered []string `json:"sources_gathered"`
}

func TestPureJSON(t *testing.T) {
	response := `{"running_summary": "Report body", "sources_gathered": ["https://a.com"]}`
	result, err := ExtractJSONFromResponse[roundPayload](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RunningSummary != "Report body" {
		t.Errorf("expected summary 'Report body', got '%s'", result.RunningSummary)
	}
	if len(result.SourcesGathered) != 1 || result.SourcesGathered[0] != "https://a.com" {
		t.Errorf("unexpected sources: %v", result.SourcesGathered)
	}
}

func TestJSONWithSurroundingText(t *testing.T) {
	response := `Here is my report: {"running_summary": "Report body", "sources_gathered": []} Hope that helps!`
	result, err := ExtractJSONFromResponse[roundPayload](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RunningSummary != "Report body" {
		t.Errorf("expected summary 'Report body', got '%s'", result.RunningSummary)
	}
}

func TestJSONInCodeFence(t *testing.T) {
	response := "```json\n{\"running_summary\": \"Report body\", \"sources_gathered\": []}\n```"
	result, err := ExtractJSONFromResponse[roundPayload](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RunningSummary != "Report body" {
		t.Errorf("expected summary 'Report body', got '%s'", result.RunningSummary)
	}
}

func TestNoJSON(t *testing.T) {
	response := "This is just plain text without any JSON."
	_, err := ExtractJSONFromResponse[roundPayload](response)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to extract valid JSON") {
		t.Errorf("expected 'failed to extract valid JSON' in error, got: %v", err)
	}
}

func TestInvalidJSON(t *testing.T) {
	response := `{"running_summary": "x", sources: }`
	_, err := ExtractJSONFromResponse[roundPayload](response)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
