// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     store
// Description: Persistence of evaluated expressions (history)
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

// Entry is one recorded evaluation. Failed evaluations carry an error code
// and no result.
type Entry struct {
	ID           string    `json:"id"`
	Expression   string    `json:"expression"`
	Result       float64   `json:"-"`
	Tree         string    `json:"tree,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMS   float64   `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEntry creates an entry with a fresh ID and timestamp
func NewEntry(expression string) *Entry {
	return &Entry{
		ID:         uuid.New().String(),
		Expression: expression,
		CreatedAt:  time.Now().UTC(),
	}
}

// Failed reports whether the evaluation ended in an error
func (e *Entry) Failed() bool {
	return e.ErrorCode != ""
}

// ResultText formats Result; +Inf, -Inf and NaN are spelled out
func (e *Entry) ResultText() string {
	if e.Failed() {
		return ""
	}
	return strconv.FormatFloat(e.Result, 'g', -1, 64)
}

// Store defines the interface for history persistence
type Store interface {
	// Record saves an entry. ID and CreatedAt are filled in when empty.
	Record(ctx context.Context, entry *Entry) error

	// List returns up to limit entries, newest first
	List(ctx context.Context, limit int) ([]*Entry, error)

	// Get returns one entry or a NOT_FOUND error
	Get(ctx context.Context, id string) (*Entry, error)

	// Clear removes all entries and returns how many were removed
	Clear(ctx context.Context) (int64, error)

	// Count returns the number of stored entries
	Count(ctx context.Context) (int, error)

	// Ping verifies that the store is usable
	Ping(ctx context.Context) error

	Close() error
}

// Config selects and configures a store implementation
type Config struct {
	Driver string // "sqlite" or "memory"
	Path   string // SQLite database file
}

// New creates the store named by cfg.Driver
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite", "sqlite3":
		return NewSQLiteStore(SQLiteConfig{Path: cfg.Path})
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, mcerror.New("unknown history driver: " + cfg.Driver).
			WithCode(mcerror.CodeInvalidConfig).
			WithOperation("store.New").
			WithDetail("driver", cfg.Driver)
	}
}

func prepare(entry *Entry) error {
	if entry == nil || (entry.Expression == "" && entry.ErrorCode == "") {
		return mcerror.New("history entry needs an expression").
			WithCode(mcerror.CodeInvalidInput).
			WithOperation("store.Record")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return nil
}

func duplicateID(id string) error {
	return mcerror.New("history entry already exists: " + id).
		WithCode(mcerror.CodeValidationFailed).
		WithOperation("store.Record").
		WithDetail("id", id)
}

func notFound(id string) error {
	return mcerror.New("history entry not found: " + id).
		WithCode(mcerror.CodeNotFound).
		WithOperation("store.Get").
		WithDetail("id", id)
}
