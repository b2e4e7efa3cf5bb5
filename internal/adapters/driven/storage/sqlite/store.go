package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists question/answer exchanges in SQLite.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore creates a SQLite history store at the specified data
// directory. If dataDir is empty, defaults to ~/.legalis/data/history.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".legalis", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &HistoryStore{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}

// Record appends an exchange to the transcript.
func (s *HistoryStore) Record(ctx context.Context, ex domain.Exchange) error {
	if ex.ID == "" {
		return fmt.Errorf("%w: exchange ID is required", domain.ErrInvalidArgument)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, question, answer, context_chunks, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			context_chunks = excluded.context_chunks,
			model = excluded.model,
			created_at = excluded.created_at
	`, ex.ID, ex.Question, ex.Answer, ex.ContextChunks, ex.Model, ex.CreatedAt)

	if err != nil {
		return fmt.Errorf("recording exchange: %w", err)
	}
	return nil
}

// Recent returns up to limit exchanges, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.Exchange, error) {
	if limit <= 0 {
		return []domain.Exchange{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, context_chunks, model, created_at
		FROM exchanges
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []domain.Exchange
	for rows.Next() {
		var ex domain.Exchange
		if err := rows.Scan(&ex.ID, &ex.Question, &ex.Answer,
			&ex.ContextChunks, &ex.Model, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		exchanges = append(exchanges, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}

	return exchanges, nil
}

// migrate runs all pending migrations.
func (s *HistoryStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
