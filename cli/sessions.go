// Session and catalog listing commands.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/richinex/fathom/llm"
	"github.com/richinex/fathom/storage"
)

// ListModels prints the provider catalog.
func ListModels() {
	for _, provider := range llm.Providers() {
		fmt.Printf("%s:\n", provider)
		for _, model := range llm.ModelsFor(provider) {
			fmt.Printf("  %s\n", model)
		}
	}
}

// ListSessions prints stored sessions, most recent first.
func ListSessions(ctx context.Context, dbPath string, limit int) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	records, err := store.ListSessions(ctx, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No saved sessions.")
		return nil
	}

	for _, rec := range records {
		created := time.Unix(rec.CreatedAt, 0).Format("2006-01-02 15:04")
		query := rec.Query
		if len(query) > 60 {
			query = query[:57] + "..."
		}
		fmt.Printf("%s  %s  %s/%s  %q\n", rec.ID, created, rec.Provider, rec.Model, query)
	}
	return nil
}

// ShowSession prints one stored session's full report.
func ShowSession(ctx context.Context, dbPath, id string) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	rec, err := store.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("session %q not found", id)
	}

	sources := "No sources gathered"
	if len(rec.Sources) > 0 {
		sources = ""
		for i, s := range rec.Sources {
			if i > 0 {
				sources += "\n"
			}
			sources += "- " + s
		}
	}

	fmt.Printf("# Research Report\n\n%s\n\n---\n\n## Sources\n%s\n\n---\n\n**Status**: %s\n",
		rec.Report, sources, rec.Status)
	return nil
}

// DeleteSession removes one stored session.
func DeleteSession(ctx context.Context, dbPath, id string) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteSession(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", id)
	return nil
}
