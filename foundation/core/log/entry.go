// File: entry.go
// Title: Log Entry Structure
// Description: Defines the log entry passed from the Logger to a Formatter
//              and the Fields helpers used at call sites.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured entries
// - 2026-10-19 v0.2.0: Trimmed user/correlation context

package log

import (
	"sort"
	"time"
)

// Entry represents a single log entry
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
	Duration  time.Duration
	Caller    *CallerInfo
}

// CallerInfo contains information about the code location that produced the entry
type CallerInfo struct {
	Function string
	File     string
	Line     int
}

// Fields represents a collection of key-value pairs for structured logging
type Fields map[string]interface{}

// Field creates a single-field Fields value
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an error field
func Err(err error) Fields {
	if err == nil {
		return Fields{"error": nil}
	}
	return Fields{"error": err.Error()}
}

// Merge returns a new Fields containing f overlaid with other
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Keys returns the field names in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewEntry creates a new log entry
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
