// File: doc.go
// Title: Expression AST Package Documentation
// Description: Abstract syntax tree for arithmetic expressions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial AST package

/*
Package ast defines the syntax tree produced by the calc parser.

A tree consists of two node shapes only:

  - Number, a literal value
  - BinaryOp, one of + - * / applied to two owned subtrees

Evaluation follows IEEE-754 float64 semantics, so 1/0 evaluates to +Inf and
0/0 to NaN. The visitors render trees as parenthesised infix or as an indented
dump:

	node := ast.NewBinaryOp(ast.NewNumber(2, 0), ast.OpAdd,
		ast.NewBinaryOp(ast.NewNumber(3, 2), ast.OpMultiply, ast.NewNumber(4, 4), 3), 1)
	ast.Infix(node) // (2 + (3 * 4))
	node.Evaluate() // 14
*/
package ast
