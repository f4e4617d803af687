// File: timer.go
// Title: Performance Timer
// Description: Measures how long an operation takes and logs the duration
//              when it is stopped.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Stop returns the elapsed time for result metadata

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field logged on completion
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer, logs the elapsed time and returns it.
// A second call returns 0 and logs nothing.
func (t *Timer) Stop() time.Duration {
	return t.stop(nil)
}

// StopWithError stops the timer and logs err together with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	return t.stop(err)
}

func (t *Timer) stop(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger == nil {
		return elapsed
	}

	fields := t.fields.Merge(Fields{
		"operation":   t.operation,
		"duration_ms": float64(elapsed.Nanoseconds()) / 1e6,
	})

	if err != nil {
		t.logger.log(LevelWarn, t.operation+" failed", err, fields)
		return elapsed
	}

	t.logger.log(t.level, t.operation+" completed", nil, fields)
	return elapsed
}
