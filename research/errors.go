// Error taxonomy for research sessions.
//
// Fatal errors (validation, unknown provider) stop a request before the
// engine is ever invoked. Engine and timeout errors mark the terminal
// Failed state. Per-file ingestion problems are warnings, not errors, and
// live on the DocumentBundle instead.

package research

import "fmt"

// ValidationError indicates unusable request input, such as an empty query.
// The engine is never invoked.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// UnknownProviderError indicates a provider outside the catalog.
// The engine is never invoked.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %q", e.Provider)
}

// EngineExecutionError wraps any failure surfaced by the external engine
// call. It never escapes the execution bridge unhandled.
type EngineExecutionError struct {
	Message string
	Cause   error
}

func (e *EngineExecutionError) Error() string {
	return fmt.Sprintf("engine execution failed: %s", e.Message)
}

func (e *EngineExecutionError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates the configured deadline elapsed before the engine
// returned. The request transitions to Failed; the underlying engine call
// may or may not have been interrupted.
type TimeoutError struct {
	Cause error
}

func (e *TimeoutError) Error() string {
	return "research timed out before the engine returned"
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
