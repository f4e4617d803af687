// File: token.go
// Title: Expression Token Definitions
// Description: Defines token types and the immutable Token value produced
//              by the tokenizer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial token definitions

package parser

import (
	"fmt"
	"strconv"

	mcast "github.com/msto63/mCALC/foundation/calc/ast"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF     TokenType = iota
	TokenUnknown           // sentinel, never produced by scanning

	// Operators
	TokenPlus     // +
	TokenMinus    // -
	TokenMultiply // *
	TokenDivide   // /

	// Literals
	TokenIdentifier // HH, a1b2
	TokenNumber     // 1234
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenUnknown:
		return "Unknown"
	case TokenPlus:
		return "Plus"
	case TokenMinus:
		return "Minus"
	case TokenMultiply:
		return "Multiply"
	case TokenDivide:
		return "Divide"
	case TokenIdentifier:
		return "Identifier"
	case TokenNumber:
		return "Number"
	default:
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
}

// Operator maps an operator token type to its AST operator
func (tt TokenType) Operator() (mcast.Operator, bool) {
	switch tt {
	case TokenPlus:
		return mcast.OpAdd, true
	case TokenMinus:
		return mcast.OpSubtract, true
	case TokenMultiply:
		return mcast.OpMultiply, true
	case TokenDivide:
		return mcast.OpDivide, true
	default:
		return 0, false
	}
}

// Token represents a lexical token with position information
type Token struct {
	Type     TokenType // Token type
	Text     string    // Source lexeme, empty for EOF
	Number   float64   // Value of a TokenNumber
	Position int       // Rune offset of the first character
}

// String returns a debug representation such as Identifier("HH") or Number(12)
func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier:
		return fmt.Sprintf("%s(%q)", t.Type, t.Text)
	case TokenNumber:
		return fmt.Sprintf("%s(%s)", t.Type, strconv.FormatFloat(t.Number, 'g', -1, 64))
	default:
		return t.Type.String()
	}
}

// Describe returns the token as it should appear in error messages
func (t Token) Describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier, TokenNumber:
		return fmt.Sprintf("%s %q", t.Type, t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}
