// File: nodes.go
// Title: Expression AST Node Definitions
// Description: Defines the closed set of AST nodes for arithmetic
//              expressions (numeric literals and binary operations) together
//              with their evaluation to a 64-bit float.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"strconv"
)

// Operator identifies the arithmetic operation of a BinaryOp
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the operator symbol
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Name returns the operator name used in diagnostics
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "Add"
	case OpSubtract:
		return "Subtract"
	case OpMultiply:
		return "Multiply"
	case OpDivide:
		return "Divide"
	default:
		return "Invalid"
	}
}

// IsValid reports whether o is one of the four arithmetic operators
func (o Operator) IsValid() bool {
	return o >= OpAdd && o <= OpDivide
}

// Precedence returns the binding strength: 1 for additive, 2 for multiplicative
func (o Operator) Precedence() int {
	switch o {
	case OpAdd, OpSubtract:
		return 1
	case OpMultiply, OpDivide:
		return 2
	default:
		return 0
	}
}

// Node is an expression tree node. The set of implementations is closed:
// *Number and *BinaryOp.
type Node interface {
	// String returns the fully parenthesised infix form
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the rune offset of the node in the source
	Position() int

	// Validate checks structural consistency of the subtree
	Validate() error

	// Evaluate computes the value of the subtree
	Evaluate() (float64, error)

	node()
}

// Number is a numeric literal
type Number struct {
	Value float64 // Literal value
	Pos   int     // Offset of the first digit
}

// BinaryOp applies Op to the values of Left and Right
type BinaryOp struct {
	Left  Node     // Left operand
	Op    Operator // Arithmetic operator
	Right Node     // Right operand
	Pos   int      // Offset of the operator
}

// NewNumber creates a number literal node
func NewNumber(value float64, pos int) *Number {
	return &Number{Value: value, Pos: pos}
}

// NewBinaryOp creates a binary operation node
func NewBinaryOp(left Node, op Operator, right Node, pos int) *BinaryOp {
	return &BinaryOp{Left: left, Op: op, Right: right, Pos: pos}
}

// InvariantError reports an internally inconsistent tree. The parser never
// produces one; it exists for hand-built trees.
type InvariantError struct {
	Reason   string
	Op       Operator
	Position int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated at position %d: %s", e.Position, e.Reason)
}

// Evaluate computes the value of node using IEEE-754 float64 arithmetic.
// Division by zero yields +Inf, -Inf or NaN rather than an error. Nil
// nodes, including typed nil pointers, yield an *InvariantError.
func Evaluate(node Node) (float64, error) {
	switch n := node.(type) {
	case *Number:
		if n == nil {
			return 0, &InvariantError{Reason: "nil number node"}
		}
		return n.Value, nil

	case *BinaryOp:
		if n == nil {
			return 0, &InvariantError{Reason: "nil binary operation node"}
		}
		if n.Left == nil || n.Right == nil {
			return 0, &InvariantError{Reason: "binary operation is missing an operand", Op: n.Op, Position: n.Pos}
		}

		left, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}

		switch n.Op {
		case OpAdd:
			return left + right, nil
		case OpSubtract:
			return left - right, nil
		case OpMultiply:
			return left * right, nil
		case OpDivide:
			return left / right, nil
		default:
			return 0, &InvariantError{Reason: "unknown operator " + n.Op.String(), Op: n.Op, Position: n.Pos}
		}

	default:
		return 0, &InvariantError{Reason: fmt.Sprintf("unsupported node %T", node)}
	}
}

// formatNumber renders a float the shortest way that round-trips
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *Number) String() string {
	return formatNumber(n.Value)
}

func (n *Number) Accept(visitor Visitor) interface{} {
	return visitor.VisitNumber(n)
}

func (n *Number) Position() int {
	return n.Pos
}

func (n *Number) Validate() error {
	if n == nil {
		return &InvariantError{Reason: "nil number node"}
	}
	return nil
}

func (n *Number) Evaluate() (float64, error) {
	return Evaluate(n)
}

func (n *Number) node() {}

func (b *BinaryOp) String() string {
	return Infix(b)
}

func (b *BinaryOp) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryOp(b)
}

func (b *BinaryOp) Position() int {
	return b.Pos
}

func (b *BinaryOp) Validate() error {
	if b == nil {
		return &InvariantError{Reason: "nil binary operation node"}
	}
	if b.Left == nil {
		return &InvariantError{Reason: "left operand is required", Op: b.Op, Position: b.Pos}
	}
	if b.Right == nil {
		return &InvariantError{Reason: "right operand is required", Op: b.Op, Position: b.Pos}
	}
	if !b.Op.IsValid() {
		return &InvariantError{Reason: "unknown operator " + b.Op.String(), Op: b.Op, Position: b.Pos}
	}

	if err := b.Left.Validate(); err != nil {
		return err
	}
	return b.Right.Validate()
}

func (b *BinaryOp) Evaluate() (float64, error) {
	return Evaluate(b)
}

func (b *BinaryOp) node() {}
