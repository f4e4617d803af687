package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("test-checker", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "test passed"}
	})

	assert.Equal(t, "test-checker", checker.Name())
	result := checker.Check(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, "test passed", result.Message)
}

func TestRegistry_AllHealthy(t *testing.T) {
	r := NewRegistry("mcalc", "0.1.0")
	r.Register(AlwaysHealthy("engine"))
	r.Register(AlwaysHealthy("history"))

	report := r.Check(context.Background())

	assert.Equal(t, "mcalc", report.Service)
	assert.Equal(t, "0.1.0", report.Version)
	assert.True(t, report.Healthy())
	require.Len(t, report.Checks, 2)
	assert.Equal(t, "engine", report.Checks[0].Name)
	assert.Equal(t, "history", report.Checks[1].Name)
	assert.False(t, report.Checks[0].Timestamp.IsZero())
}

func TestRegistry_StatusAggregation(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		expected Status
	}{
		{"empty", nil, StatusHealthy},
		{"degraded wins over healthy", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
		{"missing status counts as degraded", []Status{""}, StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry("mcalc", "test")
			for i, status := range tt.statuses {
				status := status
				r.RegisterFunc(string(rune('a'+i)), func(ctx context.Context) CheckResult {
					return CheckResult{Status: status}
				})
			}
			assert.Equal(t, tt.expected, r.Check(context.Background()).Status)
		})
	}
}

func TestRegistry_FillsNameAndUnregister(t *testing.T) {
	r := NewRegistry("mcalc", "test")
	r.RegisterFunc("store", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	report := r.Check(context.Background())
	require.Len(t, report.Checks, 1)
	assert.Equal(t, "store", report.Checks[0].Name)

	r.Unregister("store")
	assert.Empty(t, r.Check(context.Background()).Checks)
}

func TestProbeCheck(t *testing.T) {
	ok := ProbeCheck("engine", StatusUnhealthy, func(ctx context.Context) error { return nil })
	failing := ProbeCheck("history", StatusDegraded, func(ctx context.Context) error { return errors.New("database is locked") })

	assert.Equal(t, StatusHealthy, ok.Check(context.Background()).Status)

	result := failing.Check(context.Background())
	assert.Equal(t, StatusDegraded, result.Status)
	assert.Equal(t, "database is locked", result.Message)
}

func TestRegistry_CheckWithTimeout(t *testing.T) {
	r := NewRegistry("mcalc", "test")
	r.Register(ProbeCheck("slow", StatusUnhealthy, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}))

	report := r.CheckWithTimeout(10 * time.Millisecond)
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Contains(t, report.String(), "Status: unhealthy")
}
