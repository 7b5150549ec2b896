package research

import (
	"strings"
	"testing"

	"github.com/richinex/fathom/engine"
)

func TestFormatResultCompleteMapping(t *testing.T) {
	raw := engine.Result{
		"running_summary":     "Report body",
		"sources_gathered":    []any{"https://a.com", "https://b.com"},
		"research_loop_count": float64(5), // JSON decoding yields float64
	}

	result := FormatResult(raw, nil)
	if result.Report != "Report body" {
		t.Errorf("expected report 'Report body', got %q", result.Report)
	}
	if result.LoopCount != 5 {
		t.Errorf("expected loop count 5, got %d", result.LoopCount)
	}
	if got := result.RenderedSources(); got != "- https://a.com\n- https://b.com" {
		t.Errorf("unexpected rendered sources:\n%s", got)
	}
}

func TestFormatResultMissingSources(t *testing.T) {
	raw := engine.Result{"running_summary": "Report body"}

	result := FormatResult(raw, nil)
	if got := result.RenderedSources(); got != "No sources gathered" {
		t.Errorf("expected 'No sources gathered', got %q", got)
	}
}

func TestFormatResultMissingReport(t *testing.T) {
	result := FormatResult(engine.Result{}, nil)
	if result.Report != "No report generated" {
		t.Errorf("expected placeholder report, got %q", result.Report)
	}
	if result.LoopCount != 0 {
		t.Errorf("expected loop count 0, got %d", result.LoopCount)
	}
}

func TestFormatResultNilMapping(t *testing.T) {
	result := FormatResult(nil, nil)
	if result.Report != "No report generated" {
		t.Errorf("expected placeholder report, got %q", result.Report)
	}
	if got := result.RenderedSources(); got != "No sources gathered" {
		t.Errorf("expected 'No sources gathered', got %q", got)
	}
}

func TestFormatResultMistypedFields(t *testing.T) {
	raw := engine.Result{
		"running_summary":     42,
		"sources_gathered":    "not-a-list",
		"research_loop_count": "three",
	}

	result := FormatResult(raw, nil)
	if result.Report != "No report generated" {
		t.Errorf("expected fallback for mistyped report, got %q", result.Report)
	}
	if len(result.Sources) != 0 {
		t.Errorf("expected no sources for mistyped list, got %v", result.Sources)
	}
	if result.LoopCount != 0 {
		t.Errorf("expected loop count 0 for mistyped count, got %d", result.LoopCount)
	}
}

func TestFormatResultStringSliceSources(t *testing.T) {
	raw := engine.Result{
		"sources_gathered": []string{"https://a.com"},
	}
	result := FormatResult(raw, nil)
	if len(result.Sources) != 1 || result.Sources[0] != "https://a.com" {
		t.Errorf("expected in-process []string sources to be accepted, got %v", result.Sources)
	}
}

func TestFormatResultDropsNonStringSources(t *testing.T) {
	raw := engine.Result{
		"sources_gathered": []any{"https://a.com", 7, "https://b.com"},
	}
	result := FormatResult(raw, nil)
	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 string sources, got %v", result.Sources)
	}
}

func TestStatusLineContainsLoopCount(t *testing.T) {
	result := ResearchResult{LoopCount: 7}
	status := result.StatusLine()
	if !strings.Contains(status, "7") {
		t.Errorf("expected status to contain loop count, got %q", status)
	}
	if !strings.Contains(status, "complete") {
		t.Errorf("expected completion indicator in status, got %q", status)
	}
}

func TestFailureStatus(t *testing.T) {
	status := FailureStatus(&EngineExecutionError{Message: "boom"})
	if !strings.Contains(status, "boom") {
		t.Errorf("expected failure status to carry the message, got %q", status)
	}
}
