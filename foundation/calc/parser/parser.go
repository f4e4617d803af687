// File: parser.go
// Title: Expression Recursive Descent Parser
// Description: Builds an AST from the token stream with two precedence
//              tiers: multiplicative (* /) binds tighter than additive
//              (+ -), both left-associative.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser implementation

package parser

import (
	"unicode/utf8"

	mcast "github.com/msto63/mCALC/foundation/calc/ast"
	mclog "github.com/msto63/mCALC/foundation/core/log"
)

// DefaultMaxInputLength is used when Options.MaxInputLength is zero
const DefaultMaxInputLength = 4096

// Parser implements recursive descent parsing for arithmetic expressions.
// Not safe for concurrent use.
type Parser struct {
	tokenizer *Tokenizer
	current   Token // One-token lookahead
	logger    *mclog.Logger
	options   Options
}

// Options configures parser behavior
type Options struct {
	Logger         *mclog.Logger
	MaxInputLength int // In runes; negative disables the check
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mclog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "calc-parser"),
		options: opts,
	}
}

// Parse parses a complete expression with default options
func Parse(input string) (mcast.Node, error) {
	return New(Options{}).Parse(input)
}

// Parse parses input as one expression. Anything left after the expression
// is an UnexpectedTokenError.
func (p *Parser) Parse(input string) (mcast.Node, error) {
	if err := p.Reset(input); err != nil {
		return nil, err
	}

	p.logger.Debug("Starting expression parsing", mclog.Fields{
		"input":  input,
		"length": len(p.tokenizer.input),
	})

	node, err := p.ParseExpression()
	if err != nil {
		p.logger.Debug("Expression parsing failed", mclog.Fields{
			"input": input,
			"error": err.Error(),
		})
		return nil, err
	}

	if p.current.Type != TokenEOF {
		return nil, &UnexpectedTokenError{Found: p.current, Expected: TokenEOF}
	}

	if p.logger.IsLevelEnabled(mclog.LevelDebug) {
		p.logger.Debug("Expression parsing completed", mclog.Fields{
			"input": input,
			"nodes": mcast.CountNodes(node),
			"depth": mcast.Depth(node),
		})
	}

	return node, nil
}

// Reset points the parser at new input and loads the first lookahead
func (p *Parser) Reset(input string) error {
	if limit := p.options.MaxInputLength; limit > 0 {
		if n := utf8.RuneCountInString(input); n > limit {
			return &InputTooLongError{Length: n, Max: limit}
		}
	}

	p.tokenizer = NewTokenizer(input)
	p.current = Token{}
	return p.advance()
}

// Current returns the lookahead token
func (p *Parser) Current() Token {
	return p.current
}

// ParseExpression parses one expression starting at the lookahead. It does
// not require the input to end afterwards.
func (p *Parser) ParseExpression() (mcast.Node, error) {
	return p.parseAdditive()
}

// parseAdditive: multiplicative (('+' | '-') multiplicative)*
func (p *Parser) parseAdditive() (mcast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.current.Type == TokenPlus || p.current.Type == TokenMinus {
		opToken := p.current
		op, _ := opToken.Type.Operator()
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = mcast.NewBinaryOp(left, op, right, opToken.Position)
	}

	return left, nil
}

// parseMultiplicative: primary (('*' | '/') primary)*
func (p *Parser) parseMultiplicative() (mcast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.current.Type == TokenMultiply || p.current.Type == TokenDivide {
		opToken := p.current
		op, _ := opToken.Type.Operator()
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		left = mcast.NewBinaryOp(left, op, right, opToken.Position)
	}

	return left, nil
}

// parsePrimary: NUMBER
func (p *Parser) parsePrimary() (mcast.Node, error) {
	if p.current.Type != TokenNumber {
		return nil, &UnexpectedTokenError{Found: p.current, Expected: TokenNumber}
	}

	node := mcast.NewNumber(p.current.Number, p.current.Position)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return node, nil
}

// advance replaces the lookahead with the next token. EOF is sticky because
// the tokenizer keeps returning it.
func (p *Parser) advance() error {
	if p.tokenizer == nil {
		p.current = Token{Type: TokenEOF}
		return nil
	}

	token, err := p.tokenizer.NextToken()
	if err != nil {
		return err
	}

	if p.logger.IsLevelEnabled(mclog.LevelTrace) {
		p.logger.Trace("Token scanned", mclog.Fields{
			"token":    token.String(),
			"position": token.Position,
		})
	}

	p.current = token
	return nil
}
