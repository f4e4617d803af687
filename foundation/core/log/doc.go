// Package log provides structured logging for mCALC.
//
// Package: log
// Title: mCALC Structured Logging
// Description: Leveled, structured logging with JSON, text and logfmt output.
//              Loggers are immutable: WithField, WithName and friends return
//              derived copies that share the underlying sink. Errors from
//              foundation/core/error are logged at a level derived from their
//              severity.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Reduced to synchronous logging for the calculator pipeline
//
// Usage:
//
//	import mclog "github.com/msto63/mCALC/foundation/core/log"
//
//	logger := mclog.NewWithConfig(mclog.Config{
//		Level:  mclog.LevelDebug,
//		Format: mclog.FormatText,
//		Name:   "parser",
//	})
//	logger.Debug("token consumed", mclog.Fields{"type": "Number", "position": 3})
//
//	timer := logger.StartTimer("evaluate")
//	defer timer.Stop()
package log
