// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from config
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mclog "github.com/msto63/mCALC/foundation/core/log"
	"github.com/msto63/mCALC/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "logfmt" (default: json)
	Format string

	// Primary output (default: stderr, stdout belongs to command results)
	Output io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer

	// Record file:line of the caller
	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// FromAppConfig derives a LoggerConfig from the application configuration.
// verbose forces debug level.
func FromAppConfig(cfg *config.Config, serviceName string, verbose bool) LoggerConfig {
	lc := DefaultLoggerConfig(serviceName)
	lc.Level = cfg.General.LogLevel
	lc.Format = cfg.General.LogFormat
	if verbose {
		lc.Level = "debug"
		lc.EnableCaller = true
	}
	return lc
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *mclog.Logger {
	level, err := mclog.ParseLevel(cfg.Level)
	if err != nil {
		level = mclog.LevelInfo
	}

	format, err := mclog.ParseFormat(cfg.Format)
	if err != nil {
		format = mclog.FormatJSON
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mclog.NewWithConfig(mclog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *mclog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// Logger wraps the foundation logger with key/value logging methods
type Logger struct {
	*mclog.Logger
	name string
}

// Wrap adapts a foundation logger to the key/value API
func Wrap(logger *mclog.Logger) *Logger {
	return &Logger{Logger: logger, name: logger.Name()}
}

// New creates a key/value logger with the default configuration
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level mclog.Level) *Logger {
	return &Logger{
		Logger: l.Logger.WithLevel(level),
		name:   l.name,
	}
}

// With returns a new logger carrying the given key/value pairs
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.WithFields(toFields(keysAndValues...)),
		name:   l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mclog.Fields; a trailing key without
// value and non-string keys are dropped
func toFields(keysAndValues ...interface{}) mclog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mclog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
