// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, derived loggers, error routing and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{
		Level:  level,
		Format: FormatJSON,
		Output: buf,
	})
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown")
	logger.Warn("also shown")

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["message"] != "shown" || entries[1]["level"] != "warn" {
		t.Errorf("Unexpected entries: %v", entries)
	}
}

func TestLogger_DerivedLoggersAreIndependent(t *testing.T) {
	base, buf := newBufferLogger(LevelDebug)
	derived := base.WithName("parser").WithField("component", "tokenizer").WithRequestID("req-1")

	base.Info("from base")
	derived.Info("from derived", Fields{"position": 3})

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if _, ok := entries[0]["component"]; ok {
		t.Error("Base logger must not see fields added to a derived logger")
	}
	if entries[1]["logger"] != "parser" || entries[1]["component"] != "tokenizer" {
		t.Errorf("Derived entry lost context: %v", entries[1])
	}
	if entries[1]["request_id"] != "req-1" || entries[1]["position"] != 3.0 {
		t.Errorf("Derived entry lost request ID or call fields: %v", entries[1])
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)
	if logger.IsLevelEnabled(LevelInfo) {
		t.Error("info should be disabled at warn")
	}

	logger.SetLevel(LevelTrace)
	logger.Trace("now visible")

	if logger.GetLevel() != LevelTrace {
		t.Errorf("Expected trace, got %s", logger.GetLevel())
	}
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("Expected trace message after SetLevel")
	}
}

func TestLogger_LogErrorUsesSeverity(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace)

	inputErr := mcerror.New("unknown character").
		WithCode(mcerror.CodeUnknownCharacter).
		WithDetail("position", 2)
	internalErr := mcerror.New("broken tree").WithCode(mcerror.CodeInternalInvariant)

	logger.LogError(inputErr)
	logger.LogError(internalErr)
	logger.LogError(errors.New("plain"))
	logger.LogError(nil)

	entries := decodeLines(t, buf)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0]["level"] != "info" || entries[0]["error_code"] != "UNKNOWN_CHARACTER" {
		t.Errorf("Input error routed wrongly: %v", entries[0])
	}
	if entries[0]["error_position"] != 2.0 {
		t.Errorf("Expected error_position detail, got %v", entries[0]["error_position"])
	}
	if entries[1]["level"] != "error" {
		t.Errorf("Invariant error should log at error, got %v", entries[1]["level"])
	}
	if entries[2]["level"] != "error" || entries[2]["message"] != "plain" {
		t.Errorf("Plain error routed wrongly: %v", entries[2])
	}
}

func TestLogger_Caller(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{Level: LevelInfo, Output: buf, EnableCaller: true})

	logger.Info("where")

	entries := decodeLines(t, buf)
	caller, _ := entries[0]["caller"].(string)
	if !strings.HasPrefix(caller, "logger_test.go:") {
		t.Errorf("Expected caller in logger_test.go, got %q", caller)
	}
}

func TestLogger_Discard(t *testing.T) {
	logger := NewDiscard()
	logger.Error("nothing happens")
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard logger should not enable any level")
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	timer := logger.StartTimer("evaluate").WithField("source", "1+1")
	elapsed := timer.Stop()
	if elapsed < 0 {
		t.Errorf("Expected non-negative duration, got %v", elapsed)
	}
	if again := timer.Stop(); again != 0 {
		t.Errorf("Second Stop should return 0, got %v", again)
	}

	failing := logger.StartTimer("parse")
	failing.StopWithError(errors.New("unexpected token"))

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["message"] != "evaluate completed" || entries[0]["source"] != "1+1" {
		t.Errorf("Unexpected completion entry: %v", entries[0])
	}
	if _, ok := entries[0]["duration_ms"]; !ok {
		t.Error("Expected duration_ms field")
	}
	if entries[1]["level"] != "warn" || entries[1]["error"] != "unexpected token" {
		t.Errorf("Unexpected failure entry: %v", entries[1])
	}
}
