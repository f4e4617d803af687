// File: tokenizer_test.go
// Title: Expression Tokenizer Tests
// Description: Tests for character access, token scanning and error cases.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizer_PeekAndAdvance(t *testing.T) {
	tok := NewTokenizer("ab")

	if tok.Peek() != 'a' || tok.Peek() != 'a' {
		t.Error("Peek should return the same character twice")
	}
	if tok.Cursor() != 0 {
		t.Errorf("Peek must not move the cursor, got %d", tok.Cursor())
	}

	if ch := tok.Advance(); ch != 'a' {
		t.Errorf("Expected 'a', got %q", ch)
	}
	if ch := tok.Advance(); ch != 'b' {
		t.Errorf("Expected 'b', got %q", ch)
	}

	for i := 0; i < 3; i++ {
		if ch := tok.Advance(); ch != '\x00' {
			t.Errorf("Expected NUL at end, got %q", ch)
		}
		if tok.Peek() != '\x00' {
			t.Error("Expected NUL from Peek at end")
		}
	}
	if tok.Cursor() != 2 {
		t.Errorf("Cursor must stay clamped at input length, got %d", tok.Cursor())
	}
}

func TestTokenizer_SkipWhitespace(t *testing.T) {
	tok := NewTokenizer(" \t\n 7")
	tok.SkipWhitespace()
	if tok.Cursor() != 4 || tok.Peek() != '7' {
		t.Errorf("Expected cursor 4 at '7', got %d at %q", tok.Cursor(), tok.Peek())
	}

	tok.SkipWhitespace()
	if tok.Cursor() != 4 {
		t.Error("SkipWhitespace on non-space must be a no-op")
	}
}

func TestTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "empty",
			input:    "",
			expected: []Token{{Type: TokenEOF}},
		},
		{
			name:  "identifier",
			input: "HH",
			expected: []Token{
				{Type: TokenIdentifier, Text: "HH"},
				{Type: TokenEOF, Position: 2},
			},
		},
		{
			name:  "operators",
			input: "+-*/",
			expected: []Token{
				{Type: TokenPlus, Text: "+"},
				{Type: TokenMinus, Text: "-", Position: 1},
				{Type: TokenMultiply, Text: "*", Position: 2},
				{Type: TokenDivide, Text: "/", Position: 3},
				{Type: TokenEOF, Position: 4},
			},
		},
		{
			name:  "number",
			input: "1234",
			expected: []Token{
				{Type: TokenNumber, Text: "1234", Number: 1234},
				{Type: TokenEOF, Position: 4},
			},
		},
		{
			name:  "identifier with digits",
			input: "a1b2 x",
			expected: []Token{
				{Type: TokenIdentifier, Text: "a1b2"},
				{Type: TokenIdentifier, Text: "x", Position: 5},
				{Type: TokenEOF, Position: 6},
			},
		},
		{
			name:  "unicode letters",
			input: "größe*2",
			expected: []Token{
				{Type: TokenIdentifier, Text: "größe"},
				{Type: TokenMultiply, Text: "*", Position: 5},
				{Type: TokenNumber, Text: "2", Number: 2, Position: 6},
				{Type: TokenEOF, Position: 7},
			},
		},
		{
			name:  "HH plus",
			input: "HH+",
			expected: []Token{
				{Type: TokenIdentifier, Text: "HH"},
				{Type: TokenPlus, Text: "+", Position: 2},
				{Type: TokenEOF, Position: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTokenizer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizer_WhitespaceIsInsignificant(t *testing.T) {
	spaced, err := NewTokenizer(" 1 +  2 ").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	compact, err := NewTokenizer("1+2").Tokenize()
	if err != nil {
		t.Fatal(err)
	}

	ignorePositions := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Position"
	}, cmp.Ignore())
	if diff := cmp.Diff(compact, spaced, ignorePositions); diff != "" {
		t.Errorf("Spacing changed the token stream (-compact +spaced):\n%s", diff)
	}
}

func TestTokenizer_EOFIsSticky(t *testing.T) {
	tok := NewTokenizer("7")
	if _, err := tok.NextToken(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		token, err := tok.NextToken()
		if err != nil || token.Type != TokenEOF {
			t.Fatalf("Call %d: expected EOF, got %v (%v)", i, token, err)
		}
	}
}

func TestTokenizer_Errors(t *testing.T) {
	t.Run("unknown character", func(t *testing.T) {
		_, err := NewTokenizer("1 # 2").Tokenize()
		var ucErr *UnknownCharacterError
		if !errors.As(err, &ucErr) {
			t.Fatalf("Expected *UnknownCharacterError, got %T (%v)", err, err)
		}
		if ucErr.Char != '#' || ucErr.Position != 2 {
			t.Errorf("Unexpected error contents: %+v", ucErr)
		}
	})

	t.Run("embedded NUL", func(t *testing.T) {
		_, err := NewTokenizer("1\x002").Tokenize()
		var ucErr *UnknownCharacterError
		if !errors.As(err, &ucErr) || ucErr.Position != 1 {
			t.Fatalf("Expected unknown character at 1, got %v", err)
		}
	})

	t.Run("invalid number", func(t *testing.T) {
		tok := NewTokenizer("12a3+1")
		token, err := tok.NextToken()
		var inErr *InvalidNumberError
		if !errors.As(err, &inErr) {
			t.Fatalf("Expected *InvalidNumberError, got %T (%v)", err, err)
		}
		if inErr.Text != "12a3" || inErr.Char != 'a' || inErr.Position != 0 {
			t.Errorf("Unexpected error contents: %+v", inErr)
		}
		if token.Type != TokenUnknown {
			t.Errorf("Expected Unknown token alongside the error, got %v", token)
		}
		if tok.Cursor() != 4 {
			t.Errorf("Expected the whole lexeme consumed, cursor at %d", tok.Cursor())
		}
	})

	t.Run("non-ASCII digit inside number", func(t *testing.T) {
		_, err := NewTokenizer("1٣").NextToken()
		var inErr *InvalidNumberError
		if !errors.As(err, &inErr) {
			t.Fatalf("Expected *InvalidNumberError, got %v", err)
		}
	})

	t.Run("non-ASCII digit at start", func(t *testing.T) {
		_, err := NewTokenizer("٣").NextToken()
		var ucErr *UnknownCharacterError
		if !errors.As(err, &ucErr) {
			t.Fatalf("Expected *UnknownCharacterError, got %v", err)
		}
	})

	t.Run("underscore", func(t *testing.T) {
		_, err := NewTokenizer("a_b").Tokenize()
		var ucErr *UnknownCharacterError
		if !errors.As(err, &ucErr) || ucErr.Char != '_' {
			t.Fatalf("Expected underscore to be unknown, got %v", err)
		}
	})
}

func TestToken_String(t *testing.T) {
	tests := []struct {
		token    Token
		expected string
	}{
		{Token{Type: TokenIdentifier, Text: "HH"}, `Identifier("HH")`},
		{Token{Type: TokenNumber, Text: "12", Number: 12}, "Number(12)"},
		{Token{Type: TokenPlus, Text: "+"}, "Plus"},
		{Token{Type: TokenEOF}, "EOF"},
		{Token{Type: TokenUnknown}, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.token.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}
