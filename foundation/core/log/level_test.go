// File: level_test.go
// Title: Log Level Tests
// Description: Tests for level parsing, ordering and string forms.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package log

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("Expected level %s, got %s", tt.expected, level)
			}
		})
	}
}

func TestParseLevel_ErrorType(t *testing.T) {
	_, err := ParseLevel("loud")
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
	if perr.Input != "loud" || perr.Type != "level" {
		t.Errorf("Unexpected parse error contents: %+v", perr)
	}
	if perr.Error() != "invalid level: loud" {
		t.Errorf("Unexpected message %q", perr.Error())
	}
}

func TestLevel_ShouldLog(t *testing.T) {
	if !LevelError.ShouldLog(LevelInfo) {
		t.Error("error should pass an info threshold")
	}
	if LevelDebug.ShouldLog(LevelInfo) {
		t.Error("debug should not pass an info threshold")
	}
	if !LevelInfo.ShouldLog(LevelInfo) {
		t.Error("a level should pass its own threshold")
	}
}

func TestLevel_Strings(t *testing.T) {
	if LevelWarn.String() != "warn" || LevelWarn.ShortString() != "WRN" {
		t.Errorf("Unexpected strings for warn: %s/%s", LevelWarn.String(), LevelWarn.ShortString())
	}
	if Level(99).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-range level, got %s", Level(99).String())
	}
}
