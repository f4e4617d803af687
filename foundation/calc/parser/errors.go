// File: errors.go
// Title: Tokenizer and Parser Errors
// Description: Typed errors for malformed input. Each carries the rune
//              offset at which the problem was detected.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial error types

package parser

import (
	"fmt"
)

// PositionedError is implemented by every error of this package
type PositionedError interface {
	error
	Pos() int
}

// UnknownCharacterError is raised for a character outside the token alphabet
type UnknownCharacterError struct {
	Char     rune
	Position int
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("unknown character %q at position %d", e.Char, e.Position)
}

func (e *UnknownCharacterError) Pos() int { return e.Position }

// InvalidNumberError is raised for a numeric literal containing a non-digit,
// e.g. "12a"
type InvalidNumberError struct {
	Text     string // Whole lexeme
	Char     rune   // First offending character
	Position int    // Offset of the literal
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number %q at position %d: unexpected %q", e.Text, e.Position, e.Char)
}

func (e *InvalidNumberError) Pos() int { return e.Position }

// UnexpectedTokenError is raised when the lookahead does not fit the grammar
type UnexpectedTokenError struct {
	Found    Token
	Expected TokenType
}

func (e *UnexpectedTokenError) Error() string {
	if e.Expected == TokenEOF {
		return fmt.Sprintf("unexpected %s at position %d, expected end of input", e.Found.Describe(), e.Found.Position)
	}
	return fmt.Sprintf("unexpected %s at position %d, expected %s", e.Found.Describe(), e.Found.Position, e.Expected)
}

func (e *UnexpectedTokenError) Pos() int { return e.Found.Position }

// InputTooLongError is raised before scanning when the input exceeds the limit
type InputTooLongError struct {
	Length int
	Max    int
}

func (e *InputTooLongError) Error() string {
	return fmt.Sprintf("input exceeds maximum length: %d > %d", e.Length, e.Max)
}

func (e *InputTooLongError) Pos() int { return e.Max }
