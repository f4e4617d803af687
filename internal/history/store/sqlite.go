package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{Path: "./data/history.db"}
}

// NewSQLiteStore opens (and if needed creates) the history database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultSQLiteConfig()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "store.NewSQLiteStore").
			WithDetail("path", cfg.Path)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open database", "store.NewSQLiteStore").
			WithDetail("path", cfg.Path)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "store.NewSQLiteStore").
			WithDetail("path", cfg.Path)
	}

	return s, nil
}

// initSchema creates the necessary tables. Results are stored as text so
// that +Inf, -Inf and NaN survive the round trip.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		expression TEXT NOT NULL,
		result TEXT NOT NULL DEFAULT '',
		tree TEXT NOT NULL DEFAULT '',
		error_code TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		duration_ms REAL NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record saves an entry
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	if err := prepare(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, expression, result, tree, error_code, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Expression, entry.ResultText(), entry.Tree,
		entry.ErrorCode, entry.ErrorMessage, entry.DurationMS, entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return duplicateID(entry.ID)
		}
		return dbError(err, "failed to record evaluation", "store.Record").WithDetail("id", entry.ID)
	}
	return nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, expression, result, tree, error_code, error_message, duration_ms, created_at
		FROM evaluations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, dbError(err, "failed to list evaluations", "store.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, dbError(err, "failed to read evaluation", "store.List")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to iterate evaluations", "store.List")
	}

	return entries, nil
}

// Get returns one entry by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, expression, result, tree, error_code, error_message, duration_ms, created_at
		FROM evaluations WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, dbError(err, "failed to get evaluation", "store.Get").WithDetail("id", id)
	}
	return entry, nil
}

// Clear removes all entries
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations`)
	if err != nil {
		return 0, dbError(err, "failed to clear history", "store.Clear")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of stored entries
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		return 0, dbError(err, "failed to count evaluations", "store.Count")
	}
	return n, nil
}

// Ping verifies the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return dbError(err, "database unreachable", "store.Ping")
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		entry     Entry
		result    string
		createdAt int64
	)

	err := row.Scan(&entry.ID, &entry.Expression, &result, &entry.Tree,
		&entry.ErrorCode, &entry.ErrorMessage, &entry.DurationMS, &createdAt)
	if err != nil {
		return nil, err
	}

	if result != "" {
		// ParseFloat accepts +Inf, -Inf and NaN as written by ResultText
		if entry.Result, err = strconv.ParseFloat(result, 64); err != nil {
			return nil, err
		}
	}
	entry.CreatedAt = time.Unix(0, createdAt).UTC()

	return &entry, nil
}

func dbError(err error, message, operation string) *mcerror.Error {
	return mcerror.Wrap(err, message).
		WithCode(mcerror.CodeDatabaseError).
		WithOperation(operation)
}
