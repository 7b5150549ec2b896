// Package engine defines the contract with the external research engine.
//
// The engine is a black box: it accepts a single research payload, runs its
// own multi-step planning/search/synthesis, and returns once with a loosely
// structured result mapping. It exposes no incremental progress channel, so
// callers must not assume one.
package engine

import "context"

// Payload is the request sent to the research engine.
type Payload struct {
	Query           string `json:"query"`
	ExtraEffort     bool   `json:"extra_effort"`
	MinimumEffort   bool   `json:"minimum_effort"`
	Provider        string `json:"provider"`
	Model           string `json:"model"`
	MaxLoops        int    `json:"max_loops"`
	Streaming       bool   `json:"streaming"`
	UploadedContent string `json:"uploaded_data_content,omitempty"`
	SteeringEnabled bool   `json:"steering_enabled"`
}

// Result is the engine's raw result mapping. No schema is guaranteed;
// well-behaved engines include running_summary (string), sources_gathered
// (list of string) and research_loop_count (integer), but consumers must
// extract every field defensively.
type Result map[string]any

// Engine is the asynchronous entry point of the external research engine.
// Research is invoked exactly once per request and may fail with any error
// kind; callers own cancellation via ctx.
type Engine interface {
	Research(ctx context.Context, payload Payload) (Result, error)
}

// Func adapts a function to the Engine interface. Used heavily in tests.
type Func func(ctx context.Context, payload Payload) (Result, error)

// Research calls f.
func (f Func) Research(ctx context.Context, payload Payload) (Result, error) {
	return f(ctx, payload)
}
