// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     repl
// Description: Transcript lines and message types for async evaluation
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package repl

import (
	"time"

	"github.com/msto63/mCALC/foundation/calc"
)

// LineKind classifies a transcript line
type LineKind int

const (
	LineResult LineKind = iota // Evaluated expression with its value
	LineError                  // Expression that failed
	LineSystem                 // Help text and notices
)

// Line is one entry of the transcript
type Line struct {
	Kind       LineKind
	Expression string
	Text       string // Value, error message or notice
	Tree       string // Parenthesised form of a successful evaluation
	Marker     string // Caret under the error position of a failed one
	Duration   time.Duration
	Timestamp  time.Time
}

// evalResultMsg is sent when an evaluation has finished
type evalResultMsg struct {
	expression string
	result     *calc.Result
	err        error
	historyErr error
}

// tokensResultMsg is sent when :tokens has finished scanning
type tokensResultMsg struct {
	expression string
	lines      []string
	err        error
}
