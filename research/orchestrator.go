// Research session orchestrator.
//
// One Run call is one session: resolve configuration, ingest documents,
// build the immutable request, dispatch to the engine, format the result.
// The orchestrator holds no per-request state; concurrent Run calls are
// independent, each carrying its own configuration end-to-end as data.

package research

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/richinex/fathom/engine"
)

// Input is the raw, UI-shaped input for one research session.
type Input struct {
	Query           string
	Provider        string
	Model           string
	MaxLoops        int
	ExtraEffort     bool
	MinimumEffort   bool
	SteeringEnabled bool
	Streaming       bool
	Files           []FileHandle
	Progress        ProgressFunc
}

// Output is the terminal result of one research session. Report and
// Sources are display strings; Status summarizes success or failure. On
// failure Report and Sources are empty.
type Output struct {
	ID         string
	Report     string
	Sources    string
	SourceList []string
	Status     string
	State      RequestState
	LoopCount  int
	Warnings   []string
}

// Orchestrator sequences research sessions against one engine.
// Safe for concurrent use: all session state is request-scoped.
type Orchestrator struct {
	bridge *ExecutionBridge
	limit  *semaphore.Weighted
}

// NewOrchestrator creates an orchestrator around the given engine with no
// dispatch timeout and no in-flight limit.
func NewOrchestrator(eng engine.Engine) *Orchestrator {
	return &Orchestrator{bridge: NewExecutionBridge(eng, 0)}
}

// WithTimeout sets a deadline for each engine dispatch.
func (o *Orchestrator) WithTimeout(d time.Duration) *Orchestrator {
	o.bridge.timeout = d
	return o
}

// WithMaxInFlight caps the number of simultaneously dispatched sessions.
// n <= 0 leaves the orchestrator unbounded.
func (o *Orchestrator) WithMaxInFlight(n int64) *Orchestrator {
	if n > 0 {
		o.limit = semaphore.NewWeighted(n)
	}
	return o
}

// Run executes one research session to its terminal state. No error of any
// kind escapes: every failure is converted into a human-readable status
// string with empty report and sources. Nothing retries; a failed session's
// only recovery path is a new Run call.
func (o *Orchestrator) Run(ctx context.Context, in Input) Output {
	id := uuid.NewString()

	if o.limit != nil {
		if err := o.limit.Acquire(ctx, 1); err != nil {
			return failedOutput(id, nil, classifyContextErr(err))
		}
		defer o.limit.Release(1)
	}

	// Validating
	config, warnings, err := ResolveSessionConfig(
		in.Provider, in.Model, in.MaxLoops,
		in.ExtraEffort, in.MinimumEffort, in.SteeringEnabled)
	if err != nil {
		return failedOutput(id, warnings, err)
	}

	// Ingesting
	bundle := IngestDocuments(in.Files)
	for _, skip := range bundle.Skipped {
		warnings = append(warnings, fmt.Sprintf("could not read file %s: %s", skip.Name, skip.Reason))
	}

	req, err := NewResearchRequest(in.Query, config, bundle, in.Streaming)
	if err != nil {
		return failedOutput(id, warnings, err)
	}

	// Dispatched
	raw, err := o.bridge.Dispatch(ctx, req, in.Progress)
	if err != nil {
		return failedOutput(id, warnings, err)
	}

	// Completed
	result := FormatResult(raw, warnings)
	return Output{
		ID:         id,
		Report:     result.Report,
		Sources:    result.RenderedSources(),
		SourceList: result.Sources,
		Status:     result.StatusLine(),
		State:      StateCompleted,
		LoopCount:  result.LoopCount,
		Warnings:   result.Warnings,
	}
}

// Session is a handle to a research session running in the background.
type Session struct {
	ID     string
	done   chan struct{}
	output Output
}

// Done is closed when the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session is terminal and returns its output.
func (s *Session) Wait() Output {
	<-s.done
	return s.output
}

// Go starts a session in the background and returns a handle to it,
// for callers that want the future form of the blocking Run contract.
// Progress events are delivered on the session's goroutine.
func (o *Orchestrator) Go(ctx context.Context, in Input) *Session {
	s := &Session{
		ID:   uuid.NewString(),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		out := o.Run(ctx, in)
		out.ID = s.ID
		s.output = out
	}()
	return s
}

// failedOutput builds the terminal output for a failed session.
func failedOutput(id string, warnings []string, err error) Output {
	return Output{
		ID:       id,
		Status:   statusForError(err),
		State:    StateFailed,
		Warnings: warnings,
	}
}

// statusForError renders a failure as a human-readable status string.
func statusForError(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) && verr.Message == "empty query" {
		return "Please enter a research query"
	}
	return FailureStatus(err)
}
