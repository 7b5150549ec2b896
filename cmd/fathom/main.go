// Package main provides the fathom CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/richinex/fathom/cli"
	"github.com/richinex/fathom/config"
	"github.com/richinex/fathom/llm"
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	settings, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "fathom",
		Short: "Deep research sessions against a multi-agent research engine",
		Long: `A CLI for running deep research sessions.

Each session validates its configuration, ingests uploaded documents,
dispatches a single request to the research engine, and renders the
returned report, sources and status. Sessions can be persisted to a
local SQLite database.`,
	}

	rootCmd.AddCommand(researchCmd(settings))
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(sessionsCmd(settings))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func researchCmd(settings config.Settings) *cobra.Command {
	var (
		provider      string
		model         string
		maxLoops      int
		extraEffort   bool
		minimumEffort bool
		steering      bool
		files         []string
		save          bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "research [query]",
		Short: "Run one deep research session",
		Long: `Run one deep research session for the given query.

Uploaded files are included as research context; files that cannot be
read as text are skipped with a warning. When RESEARCH_ENGINE_URL is
set the session is dispatched to that service, otherwise a chat-backed
fallback drives the selected LLM provider directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnMissingAPIKey(provider, settings.EngineURL)

			opts := cli.Options{
				Provider:        provider,
				Model:           model,
				MaxLoops:        maxLoops,
				ExtraEffort:     extraEffort,
				MinimumEffort:   minimumEffort,
				SteeringEnabled: steering,
				Files:           files,
				EngineURL:       settings.EngineURL,
				EngineTimeout:   settings.EngineTimeout,
				MaxInFlight:     settings.MaxInFlight,
				DBPath:          settings.DBPath,
				Save:            save,
				Verbose:         verbose,
			}
			return cli.Research(context.Background(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", settings.Provider, "LLM provider (openai, anthropic, google, groq, sambanova)")
	cmd.Flags().StringVarP(&model, "model", "m", settings.Model, "Model to use")
	cmd.Flags().IntVar(&maxLoops, "max-loops", settings.MaxLoops, "Maximum research loops (1-20)")
	cmd.Flags().BoolVar(&extraEffort, "extra-effort", false, "Perform more extensive research")
	cmd.Flags().BoolVar(&minimumEffort, "minimum-effort", false, "Force minimum effort (1 loop)")
	cmd.Flags().BoolVar(&steering, "steering", false, "Allow real-time guidance during research")
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "File to include in research context (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the completed session")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show progress milestones")

	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List supported providers and models",
		Run: func(cmd *cobra.Command, args []string) {
			cli.ListModels()
		},
	}
}

func sessionsCmd(settings config.Settings) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List saved research sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ListSessions(context.Background(), settings.DBPath, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum sessions to list")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one saved session's report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ShowSession(context.Background(), settings.DBPath, args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.DeleteSession(context.Background(), settings.DBPath, args[0])
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(deleteCmd)
	return cmd
}

// warnMissingAPIKey warns early when the chat-backed fallback will be used
// and the selected provider has no key: the run cannot succeed.
func warnMissingAPIKey(provider, engineURL string) {
	if engineURL != "" {
		return
	}
	if !llm.KnownProvider(provider) {
		return // the resolver reports unknown providers properly
	}
	if !config.HasAPIKey(provider) {
		env, _ := config.APIKeyEnvFor(provider)
		fmt.Fprintf(os.Stderr, "Warning: %s not set. LLM provider %q may not work.\n", env, provider)
	}
}
