// Result formatting.
//
// The engine's result mapping has no guaranteed schema, so every field is
// extracted defensively with an explicit default. Formatting never fails:
// missing or mistyped fields fall back, they do not raise.

package research

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/richinex/fathom/engine"
)

// Default strings for absent result fields.
const (
	emptyReportPlaceholder = "No report generated"
	noSourcesPlaceholder   = "No sources gathered"
)

// ResearchResult is the normalized form of an engine result, built once and
// consumed by the caller.
type ResearchResult struct {
	Report    string
	Sources   []string
	LoopCount int
	Warnings  []string
}

// FormatResult defensively extracts report, sources and loop count from the
// engine's raw result mapping. Resolver and ingestion warnings are carried
// through on the result.
func FormatResult(raw engine.Result, warnings []string) ResearchResult {
	return ResearchResult{
		Report:    stringField(raw, "running_summary", emptyReportPlaceholder),
		Sources:   stringListField(raw, "sources_gathered"),
		LoopCount: intField(raw, "research_loop_count"),
		Warnings:  warnings,
	}
}

// RenderedSources renders one bullet line per source, in the order
// received, or the placeholder when no sources were gathered.
func (r ResearchResult) RenderedSources() string {
	if len(r.Sources) == 0 {
		return noSourcesPlaceholder
	}
	lines := make([]string, len(r.Sources))
	for i, source := range r.Sources {
		lines[i] = fmt.Sprintf("- %s", source)
	}
	return strings.Join(lines, "\n")
}

// StatusLine composes the success status string.
func (r ResearchResult) StatusLine() string {
	return fmt.Sprintf("Research complete! Conducted %d research loops.", r.LoopCount)
}

// FailureStatus composes the status string for a Failed terminal state.
// Report and sources are left empty by the caller.
func FailureStatus(err error) string {
	return fmt.Sprintf("Error during research: %v", err)
}

// stringField extracts a string value, returning fallback when the key is
// absent or holds a non-string.
func stringField(raw engine.Result, key, fallback string) string {
	if raw == nil {
		return fallback
	}
	if s, ok := raw[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// stringListField extracts an ordered list of strings. JSON decoding yields
// []any, but []string values (from in-process engines) are accepted too.
// Non-string elements are dropped.
func stringListField(raw engine.Result, key string) []string {
	if raw == nil {
		return nil
	}
	switch v := raw[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// intField extracts an integer, tolerating the numeric types JSON decoding
// produces. Returns 0 when absent or mistyped.
func intField(raw engine.Result, key string) int {
	if raw == nil {
		return 0
	}
	switch v := raw[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		return 0
	default:
		return 0
	}
}
