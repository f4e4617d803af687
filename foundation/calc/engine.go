// File: engine.go
// Title: Expression Engine
// Description: High-level entry point that runs tokenizer, parser and
//              evaluator for one expression and reports failures as coded
//              mCALC errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine implementation

package calc

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	mcast "github.com/msto63/mCALC/foundation/calc/ast"
	mcparser "github.com/msto63/mCALC/foundation/calc/parser"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
	mclog "github.com/msto63/mCALC/foundation/core/log"
)

// Engine evaluates expressions. It keeps no per-call state and is safe for
// concurrent use; every call gets its own tokenizer and parser.
type Engine struct {
	logger  *mclog.Logger
	options Options
}

// Options configures the engine
type Options struct {
	Logger         *mclog.Logger
	MaxInputLength int // Zero selects parser.DefaultMaxInputLength
}

// Result is the outcome of a successful evaluation
type Result struct {
	Source   string
	Value    float64
	Tree     mcast.Node
	Duration time.Duration
}

// Infix returns the parenthesised form of the parsed tree
func (r *Result) Infix() string {
	return mcast.Infix(r.Tree)
}

// IsFinite reports whether Value is neither infinite nor NaN
func (r *Result) IsFinite() bool {
	return IsFinite(r.Value)
}

// IsFinite reports whether v is neither infinite nor NaN
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ValueText formats Value for display: shortest round-trip form, or
// +Inf, -Inf and NaN
func (r *Result) ValueText() string {
	return FormatValue(r.Value)
}

// FormatValue renders a float64 the way results are displayed
func FormatValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// ErrorPosition returns the rune offset recorded on an error returned by
// the engine. ok is false for errors without a position.
func ErrorPosition(err error) (pos int, ok bool) {
	e, isCoded := mcerror.As(err)
	if !isCoded {
		return 0, false
	}
	raw, found := e.Detail("position")
	if !found {
		return 0, false
	}
	pos, ok = raw.(int)
	return pos, ok
}

// New creates a new engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mclog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = mcparser.DefaultMaxInputLength
	}

	return &Engine{
		logger:  opts.Logger.WithField("component", "calc-engine"),
		options: opts,
	}
}

// MaxInputLength returns the effective input limit
func (e *Engine) MaxInputLength() int {
	return e.options.MaxInputLength
}

// Evaluate parses and evaluates source. On failure no partial result is
// returned; the error is a *mcerror.Error wrapping the typed parser or ast
// error.
func (e *Engine) Evaluate(ctx context.Context, source string) (*Result, error) {
	const operation = "calc.Evaluate"

	if err := ctx.Err(); err != nil {
		return nil, e.cancelled(operation, err)
	}

	timer := e.logger.StartTimer("evaluate").WithField("input", source)

	tree, err := e.newParser().Parse(source)
	if err != nil {
		wrapped := e.wrapError(operation, source, err)
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	value, err := mcast.Evaluate(tree)
	if err != nil {
		wrapped := e.wrapError(operation, source, err)
		e.logger.LogError(wrapped)
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	duration := timer.WithField("result", FormatValue(value)).Stop()

	return &Result{
		Source:   source,
		Value:    value,
		Tree:     tree,
		Duration: duration,
	}, nil
}

// Parse returns the syntax tree of source without evaluating it
func (e *Engine) Parse(ctx context.Context, source string) (mcast.Node, error) {
	const operation = "calc.Parse"

	if err := ctx.Err(); err != nil {
		return nil, e.cancelled(operation, err)
	}

	tree, err := e.newParser().Parse(source)
	if err != nil {
		return nil, e.wrapError(operation, source, err)
	}
	return tree, nil
}

// Tokenize returns the complete token stream of source, ending with EOF
func (e *Engine) Tokenize(ctx context.Context, source string) ([]mcparser.Token, error) {
	const operation = "calc.Tokenize"

	if err := ctx.Err(); err != nil {
		return nil, e.cancelled(operation, err)
	}

	if limit := e.options.MaxInputLength; limit > 0 {
		if n := utf8.RuneCountInString(source); n > limit {
			return nil, e.wrapError(operation, source, &mcparser.InputTooLongError{Length: n, Max: limit})
		}
	}

	tokens, err := mcparser.NewTokenizer(source).Tokenize()
	if err != nil {
		return nil, e.wrapError(operation, source, err)
	}
	return tokens, nil
}

// Validate reports whether source is a well-formed expression
func (e *Engine) Validate(ctx context.Context, source string) error {
	tree, err := e.Parse(ctx, source)
	if err != nil {
		return err
	}
	if err := tree.Validate(); err != nil {
		return e.wrapError("calc.Validate", source, err)
	}
	return nil
}

func (e *Engine) newParser() *mcparser.Parser {
	return mcparser.New(mcparser.Options{
		Logger:         e.logger,
		MaxInputLength: e.options.MaxInputLength,
	})
}

func (e *Engine) cancelled(operation string, err error) error {
	return mcerror.Wrap(err, "evaluation cancelled").
		WithCode(mcerror.CodeTimeout).
		WithOperation(operation)
}

// wrapError maps the typed pipeline errors onto error codes
func (e *Engine) wrapError(operation, source string, err error) error {
	code := mcerror.CodeInternal
	message := "evaluation failed"

	var (
		unknownChar *mcparser.UnknownCharacterError
		invalidNum  *mcparser.InvalidNumberError
		unexpected  *mcparser.UnexpectedTokenError
		tooLong     *mcparser.InputTooLongError
		invariant   *mcast.InvariantError
	)

	switch {
	case errors.As(err, &unknownChar):
		code, message = mcerror.CodeUnknownCharacter, "invalid expression"
	case errors.As(err, &invalidNum):
		code, message = mcerror.CodeInvalidNumber, "invalid expression"
	case errors.As(err, &unexpected):
		code, message = mcerror.CodeUnexpectedToken, "invalid expression"
	case errors.As(err, &tooLong):
		code, message = mcerror.CodeInputTooLong, "invalid expression"
	case errors.As(err, &invariant):
		code, message = mcerror.CodeInternalInvariant, "evaluation failed"
	}

	wrapped := mcerror.Wrap(err, message).
		WithCode(code).
		WithOperation(operation).
		WithDetail("input", source)

	var positioned mcparser.PositionedError
	if errors.As(err, &positioned) {
		wrapped = wrapped.WithDetail("position", positioned.Pos())
	} else if invariant != nil {
		wrapped = wrapped.WithDetail("position", invariant.Position)
	}

	return wrapped
}
