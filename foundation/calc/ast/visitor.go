// File: visitor.go
// Title: Expression AST Visitors
// Description: Visitor interface plus the infix and tree renderers and the
//              structural helpers used by the CLI and the HTTP service.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial visitor implementation

package ast

import (
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitNumber(n *Number) interface{}
	VisitBinaryOp(b *BinaryOp) interface{}
}

// StringVisitor renders a tree as fully parenthesised infix: (2 + (3 * 4))
type StringVisitor struct{}

func (sv *StringVisitor) VisitNumber(n *Number) interface{} {
	return formatNumber(n.Value)
}

func (sv *StringVisitor) VisitBinaryOp(b *BinaryOp) interface{} {
	return "(" + render(sv, b.Left) + " " + b.Op.String() + " " + render(sv, b.Right) + ")"
}

// TreeVisitor renders a tree one node per line, children indented
type TreeVisitor struct {
	Indent string
	depth  int
}

func (tv *TreeVisitor) prefix() string {
	indent := tv.Indent
	if indent == "" {
		indent = "  "
	}
	return strings.Repeat(indent, tv.depth)
}

func (tv *TreeVisitor) VisitNumber(n *Number) interface{} {
	return tv.prefix() + "Number(" + formatNumber(n.Value) + ")\n"
}

func (tv *TreeVisitor) VisitBinaryOp(b *BinaryOp) interface{} {
	var sb strings.Builder
	sb.WriteString(tv.prefix() + "BinaryOp(" + b.Op.String() + ")\n")

	tv.depth++
	sb.WriteString(render(tv, b.Left))
	sb.WriteString(render(tv, b.Right))
	tv.depth--

	return sb.String()
}

func render(v Visitor, n Node) string {
	if n == nil {
		return "<nil>"
	}
	s, _ := n.Accept(v).(string)
	return s
}

// Infix returns the fully parenthesised infix form of node
func Infix(node Node) string {
	return render(&StringVisitor{}, node)
}

// Tree returns the indented tree dump of node without a trailing newline
func Tree(node Node) string {
	return strings.TrimSuffix(render(&TreeVisitor{}, node), "\n")
}

// Walk calls fn for node and its descendants in pre-order until fn returns false
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	if b, ok := node.(*BinaryOp); ok {
		Walk(b.Left, fn)
		Walk(b.Right, fn)
	}
}

// CountNodes returns the number of nodes in the tree
func CountNodes(node Node) int {
	count := 0
	Walk(node, func(Node) bool {
		count++
		return true
	})
	return count
}

// Depth returns the height of the tree; a single literal has depth 1
func Depth(node Node) int {
	switch n := node.(type) {
	case *Number:
		return 1
	case *BinaryOp:
		left, right := Depth(n.Left), Depth(n.Right)
		if left > right {
			return left + 1
		}
		return right + 1
	default:
		return 0
	}
}
