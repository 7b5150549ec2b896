// Package storage provides SQLite persistence for completed research
// sessions.
//
// Information Hiding:
// - SQLite connection management hidden behind the store type
// - Schema details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SessionRecord is one completed research session.
type SessionRecord struct {
	ID        string
	Query     string
	Provider  string
	Model     string
	Report    string
	Sources   []string
	Status    string
	LoopCount int
	CreatedAt int64
}

// SqliteStore persists research sessions in a SQLite database file.
type SqliteStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func Open(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewInMemory creates an in-memory store (useful for testing).
func NewInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS research_sessions (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			report TEXT NOT NULL,
			sources TEXT NOT NULL,
			status TEXT NOT NULL,
			loop_count INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_research_sessions_created
		ON research_sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Sources are stored newline-joined; none of the source strings the engine
// returns contain newlines.
const sourceSeparator = "\n"

// SaveSession stores a completed session record.
func (s *SqliteStore) SaveSession(ctx context.Context, rec SessionRecord) error {
	createdAt := rec.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO research_sessions
		(id, query, provider, model, report, sources, status, loop_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Query,
		rec.Provider,
		rec.Model,
		rec.Report,
		strings.Join(rec.Sources, sourceSeparator),
		rec.Status,
		rec.LoopCount,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetSession loads a session by ID. Returns nil, nil if not found.
func (s *SqliteStore) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	var rec SessionRecord
	var sources string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, provider, model, report, sources, status, loop_count, created_at
		FROM research_sessions WHERE id = ?`,
		id).Scan(
		&rec.ID,
		&rec.Query,
		&rec.Provider,
		&rec.Model,
		&rec.Report,
		&sources,
		&rec.Status,
		&rec.LoopCount,
		&rec.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if sources != "" {
		rec.Sources = strings.Split(sources, sourceSeparator)
	}

	return &rec, nil
}

// ListSessions lists stored sessions, most recent first.
func (s *SqliteStore) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, provider, model, report, sources, status, loop_count, created_at
		FROM research_sessions
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	records := []SessionRecord{} // Start with empty slice, not nil
	for rows.Next() {
		var rec SessionRecord
		var sources string
		err := rows.Scan(
			&rec.ID,
			&rec.Query,
			&rec.Provider,
			&rec.Model,
			&rec.Report,
			&sources,
			&rec.Status,
			&rec.LoopCount,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if sources != "" {
			rec.Sources = strings.Split(sources, sourceSeparator)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return records, nil
}

// DeleteSession removes a session by ID.
func (s *SqliteStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM research_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
