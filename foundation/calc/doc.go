// File: doc.go
// Title: mCALC Expression Engine Package Documentation
// Description: Entry point of the expression pipeline.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine

/*
Package calc evaluates arithmetic expressions.

The pipeline is: characters, tokens (package parser), syntax tree (package
ast), float64. Engine ties the stages together, applies the input limit and
turns every failure into a *mcerror.Error with one of the codes
UNKNOWN_CHARACTER, INVALID_NUMBER, UNEXPECTED_TOKEN, INPUT_TOO_LONG or
INTERNAL_INVARIANT. The typed error stays reachable through errors.As.

	engine := calc.New(calc.Options{})
	result, err := engine.Evaluate(ctx, "2 + 3 * 4")
	if err != nil {
		return err
	}
	fmt.Println(result.ValueText()) // 14
*/
package calc
