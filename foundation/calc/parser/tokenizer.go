// File: tokenizer.go
// Title: Expression Tokenizer
// Description: On-demand scanner that turns an expression string into
//              tokens, one per NextToken call. Positions are rune offsets.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tokenizer implementation

package parser

import (
	"unicode"
)

// nul is returned by Peek and Advance once the input is exhausted
const nul = '\x00'

// Tokenizer scans an expression. Not safe for concurrent use.
type Tokenizer struct {
	input  []rune
	cursor int // 0 <= cursor <= len(input)
}

// NewTokenizer creates a tokenizer positioned at the start of input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: []rune(input)}
}

// Peek returns the character at the cursor without consuming it, or NUL at
// the end of input
func (t *Tokenizer) Peek() rune {
	if t.cursor >= len(t.input) {
		return nul
	}
	return t.input[t.cursor]
}

// Advance returns the character at the cursor and moves past it. At the end
// of input it returns NUL and leaves the cursor in place.
func (t *Tokenizer) Advance() rune {
	if t.cursor >= len(t.input) {
		return nul
	}
	ch := t.input[t.cursor]
	t.cursor++
	return ch
}

// SkipWhitespace advances over consecutive whitespace
func (t *Tokenizer) SkipWhitespace() {
	for !t.atEnd() && unicode.IsSpace(t.Peek()) {
		t.cursor++
	}
}

// Cursor returns the current scan offset in runes
func (t *Tokenizer) Cursor() int {
	return t.cursor
}

func (t *Tokenizer) atEnd() bool {
	return t.cursor >= len(t.input)
}

// NextToken scans and returns exactly one token. Once the input is exhausted
// every call returns TokenEOF.
func (t *Tokenizer) NextToken() (Token, error) {
	t.SkipWhitespace()

	start := t.cursor
	if t.atEnd() {
		return Token{Type: TokenEOF, Position: start}, nil
	}

	ch := t.Advance()
	switch ch {
	case '+':
		return t.newToken(TokenPlus, start), nil
	case '-':
		return t.newToken(TokenMinus, start), nil
	case '*':
		return t.newToken(TokenMultiply, start), nil
	case '/':
		return t.newToken(TokenDivide, start), nil
	}

	switch {
	case unicode.IsLetter(ch):
		t.skipAlphanumeric()
		return t.newToken(TokenIdentifier, start), nil
	case isDigit(ch):
		return t.readNumber(start, ch)
	default:
		// Includes an embedded NUL: only the real end of input is EOF.
		return Token{Type: TokenUnknown, Text: string(ch), Position: start},
			&UnknownCharacterError{Char: ch, Position: start}
	}
}

// Tokenize drains the tokenizer up to and including TokenEOF
func (t *Tokenizer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		token, err := t.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
		if token.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// readNumber accumulates base-10 digits; first is already consumed. A letter
// or non-ASCII digit inside the literal rejects the whole lexeme.
func (t *Tokenizer) readNumber(start int, first rune) (Token, error) {
	value := float64(first - '0')
	var bad rune

	for isAlphanumeric(t.Peek()) {
		ch := t.Advance()
		if bad != 0 {
			continue
		}
		if !isDigit(ch) {
			bad = ch
			continue
		}
		value = value*10 + float64(ch-'0')
	}

	token := t.newToken(TokenNumber, start)
	if bad != 0 {
		return Token{Type: TokenUnknown, Text: token.Text, Position: start},
			&InvalidNumberError{Text: token.Text, Char: bad, Position: start}
	}

	token.Number = value
	return token, nil
}

func (t *Tokenizer) skipAlphanumeric() {
	for isAlphanumeric(t.Peek()) {
		t.cursor++
	}
}

func (t *Tokenizer) newToken(tokenType TokenType, start int) Token {
	return Token{
		Type:     tokenType,
		Text:     string(t.input[start:t.cursor]),
		Position: start,
	}
}

// isDigit accepts ASCII digits only
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphanumeric(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
