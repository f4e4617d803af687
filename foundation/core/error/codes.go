// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across mCALC. Codes classify
//              failures of the expression pipeline (tokenizer, parser,
//              evaluator) as well as the surrounding storage, configuration
//              and service layers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Expression pipeline codes, trimmed business codes

package error

import "net/http"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Expression pipeline
	CodeUnknownCharacter  Code = "UNKNOWN_CHARACTER"
	CodeInvalidNumber     Code = "INVALID_NUMBER"
	CodeUnexpectedToken   Code = "UNEXPECTED_TOKEN"
	CodeInputTooLong      Code = "INPUT_TOO_LONG"
	CodeInternalInvariant Code = "INTERNAL_INVARIANT"

	// Storage
	CodeDatabaseError    Code = "DATABASE_ERROR"
	CodeConnectionFailed Code = "CONNECTION_FAILED"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Service
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeUnknownCharacter, CodeInvalidNumber, CodeUnexpectedToken, CodeInputTooLong, CodeInternalInvariant,
		CodeDatabaseError, CodeConnectionFailed,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeServiceUnavailable, CodeValidationFailed:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeUnknownCharacter, CodeInvalidNumber:
		return "lexical"
	case CodeUnexpectedToken, CodeInputTooLong:
		return "syntax"
	case CodeInternalInvariant:
		return "evaluation"
	case CodeDatabaseError, CodeConnectionFailed:
		return "database"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeServiceUnavailable:
		return "service"
	case CodeInvalidInput, CodeValidationFailed:
		return "validation"
	default:
		return "generic"
	}
}

// IsInputError reports whether the code describes malformed user input
// rather than a failure of mCALC itself.
func (c Code) IsInputError() bool {
	switch c {
	case CodeUnknownCharacter, CodeInvalidNumber, CodeUnexpectedToken, CodeInputTooLong,
		CodeInvalidInput, CodeValidationFailed:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch {
	case c == CodeNotFound:
		return http.StatusNotFound
	case c == CodeInputTooLong:
		return http.StatusRequestEntityTooLarge
	case c.IsInputError():
		return http.StatusBadRequest
	case c == CodeTimeout:
		return http.StatusRequestTimeout
	case c == CodeServiceUnavailable, c == CodeDatabaseError, c == CodeConnectionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
