// Execution bridge between a progress-reporting caller and the single-shot
// asynchronous research engine.
//
// The bridge emits a fixed sequence of advisory milestones, invokes the
// engine exactly once, and converts every engine failure into a typed
// error. No failure of any kind propagates unhandled past this boundary,
// and nothing here retries: a failed request's only recovery path is a
// fresh request.

package research

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/richinex/fathom/engine"
)

// RequestState is the lifecycle state of one research request.
type RequestState int

const (
	StateIdle RequestState = iota
	StateValidating
	StateIngesting
	StateDispatched
	StateCompleted
	StateFailed
)

// String returns the state name.
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateIngesting:
		return "ingesting"
	case StateDispatched:
		return "dispatched"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExecutionBridge dispatches research requests to an engine.
type ExecutionBridge struct {
	engine  engine.Engine
	timeout time.Duration
}

// NewExecutionBridge creates a bridge around the given engine. A zero
// timeout means the engine call is bounded only by the caller's context.
func NewExecutionBridge(eng engine.Engine, timeout time.Duration) *ExecutionBridge {
	return &ExecutionBridge{engine: eng, timeout: timeout}
}

// dispatchOutcome carries the engine call result across the goroutine
// boundary.
type dispatchOutcome struct {
	result engine.Result
	err    error
}

// Dispatch sends the request to the engine exactly once, reporting fixed
// milestones to the progress sink. On success it returns the engine's raw
// result mapping; on failure it returns an EngineExecutionError or, when
// the deadline elapsed, a TimeoutError. The engine call runs in its own
// goroutine so an uninterruptible engine cannot block past the deadline.
func (b *ExecutionBridge) Dispatch(ctx context.Context, req ResearchRequest, sink ProgressFunc) (engine.Result, error) {
	sink = monotonic(sink)

	report(sink, 0.1, "Initializing research...")

	if !req.Documents.Empty() {
		report(sink, 0.2, "Processing uploaded files...")
	}

	report(sink, 0.3, "Starting deep research...")

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	payload := engine.Payload{
		Query:           req.Query,
		ExtraEffort:     req.Config.ExtraEffort,
		MinimumEffort:   req.Config.MinimumEffort,
		Provider:        req.Config.Provider,
		Model:           req.Config.Model,
		MaxLoops:        req.Config.MaxLoops,
		Streaming:       req.Streaming,
		UploadedContent: req.UploadedContent(),
		SteeringEnabled: req.Config.SteeringEnabled,
	}

	outcome := make(chan dispatchOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				outcome <- dispatchOutcome{err: fmt.Errorf("engine panic: %v", r)}
			}
		}()
		result, err := b.engine.Research(ctx, payload)
		outcome <- dispatchOutcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, classifyContextErr(ctx.Err())
	case out := <-outcome:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return nil, &TimeoutError{Cause: out.err}
			}
			return nil, &EngineExecutionError{Message: out.err.Error(), Cause: out.err}
		}
		report(sink, 1.0, "Research complete!")
		return out.result, nil
	}
}

func classifyContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Cause: err}
	}
	return &EngineExecutionError{Message: fmt.Sprintf("research cancelled: %v", err), Cause: err}
}
