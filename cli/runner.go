// Command execution for CLI commands.
//
// Information Hiding:
// - Engine selection (remote service vs chat-backed fallback) hidden
// - Orchestrator setup hidden
// - Output formatting hidden

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/richinex/fathom/config"
	"github.com/richinex/fathom/engine"
	"github.com/richinex/fathom/llm"
	"github.com/richinex/fathom/research"
	"github.com/richinex/fathom/storage"
)

// Options holds CLI execution options for a research run.
type Options struct {
	Provider        string
	Model           string
	MaxLoops        int
	ExtraEffort     bool
	MinimumEffort   bool
	SteeringEnabled bool
	Files           []string
	EngineURL       string
	EngineTimeout   time.Duration
	MaxInFlight     int64
	DBPath          string
	Save            bool
	Verbose         bool
}

// Research runs one research session and prints the report, sources and
// status to stdout. The session is persisted when --save is set.
func Research(ctx context.Context, query string, opts Options) error {
	eng := buildEngine(opts)

	orch := research.NewOrchestrator(eng).
		WithTimeout(opts.EngineTimeout).
		WithMaxInFlight(opts.MaxInFlight)

	var progress research.ProgressFunc
	if opts.Verbose {
		progress = func(ev research.ProgressEvent) {
			fmt.Printf("[%3.0f%%] %s\n", ev.Fraction*100, ev.Label)
		}
	}

	files := make([]research.FileHandle, 0, len(opts.Files))
	for _, path := range opts.Files {
		files = append(files, research.FileHandle{
			Path: path,
			Name: filepath.Base(path),
		})
	}

	out := orch.Run(ctx, research.Input{
		Query:           query,
		Provider:        opts.Provider,
		Model:           opts.Model,
		MaxLoops:        opts.MaxLoops,
		ExtraEffort:     opts.ExtraEffort,
		MinimumEffort:   opts.MinimumEffort,
		SteeringEnabled: opts.SteeringEnabled,
		Files:           files,
		Progress:        progress,
	})

	for _, warning := range out.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	printOutput(out)

	if opts.Save && out.State == research.StateCompleted {
		if err := saveSession(ctx, opts.DBPath, query, opts, out); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save session: %v\n", err)
		} else {
			fmt.Printf("\nSaved session %s\n", out.ID)
		}
	}

	if out.State == research.StateFailed {
		return fmt.Errorf("research failed: %s", out.Status)
	}
	return nil
}

// buildEngine picks the remote service when an engine URL is configured,
// falling back to the chat-backed engine otherwise.
func buildEngine(opts Options) engine.Engine {
	if opts.EngineURL != "" {
		return engine.NewRemote(opts.EngineURL)
	}
	return engine.NewChatEngine(func(provider, model string) (llm.Provider, error) {
		apiKey, err := config.APIKeyFor(provider)
		if err != nil {
			return nil, err
		}
		return llm.NewProvider(provider, model, apiKey)
	})
}

// printOutput renders a terminal session in the original report layout.
func printOutput(out research.Output) {
	fmt.Printf("# Research Report\n\n%s\n\n---\n\n## Sources\n%s\n\n---\n\n**Status**: %s\n",
		out.Report, out.Sources, out.Status)
}

// saveSession persists a completed session to the SQLite store.
func saveSession(ctx context.Context, dbPath, query string, opts Options, out research.Output) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveSession(ctx, storage.SessionRecord{
		ID:        out.ID,
		Query:     query,
		Provider:  opts.Provider,
		Model:     opts.Model,
		Report:    out.Report,
		Sources:   out.SourceList,
		Status:    out.Status,
		LoopCount: out.LoopCount,
	})
}
