// Package error provides structured error handling for mCALC.
//
// Package: error
// Title: mCALC Error Handling
// Description: Structured errors with codes, severities, details and stack
//              traces. The expression pipeline wraps its typed errors
//              (unknown character, unexpected token, ...) in an *Error so
//              that the CLI, the HTTP service and the logger can classify a
//              failure without knowing the concrete type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Codes for the expression pipeline
//
// Usage:
//
//	err := mcerror.Wrap(parseErr, "evaluation failed").
//		WithCode(mcerror.CodeUnexpectedToken).
//		WithOperation("calc.Evaluate").
//		WithDetail("position", 4)
//
//	if mcerror.HasCode(err, mcerror.CodeUnexpectedToken) {
//		status := mcerror.GetCode(err).HTTPStatus() // 400
//	}
package error
