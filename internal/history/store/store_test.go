package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			entry := NewEntry("2 + 3 * 4")
			entry.Result = 14
			entry.Tree = "(2 + (3 * 4))"
			entry.DurationMS = 0.25
			require.NoError(t, s.Record(ctx, entry))

			got, err := s.Get(ctx, entry.ID)
			require.NoError(t, err)
			assert.Equal(t, entry.Expression, got.Expression)
			assert.Equal(t, 14.0, got.Result)
			assert.Equal(t, entry.Tree, got.Tree)
			assert.Equal(t, 0.25, got.DurationMS)
			assert.True(t, entry.CreatedAt.Equal(got.CreatedAt))
			assert.False(t, got.Failed())
		})
	}
}

func TestStore_NonFiniteResults(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			values := map[string]float64{
				"1 / 0":  math.Inf(1),
				"-1 / 0": math.Inf(-1),
				"0 / 0":  math.NaN(),
			}
			ids := make(map[string]string)
			for expr, v := range values {
				e := NewEntry(expr)
				e.Result = v
				require.NoError(t, s.Record(ctx, e))
				ids[expr] = e.ID
			}

			got, err := s.Get(ctx, ids["1 / 0"])
			require.NoError(t, err)
			assert.True(t, math.IsInf(got.Result, 1))

			got, err = s.Get(ctx, ids["-1 / 0"])
			require.NoError(t, err)
			assert.True(t, math.IsInf(got.Result, -1))

			got, err = s.Get(ctx, ids["0 / 0"])
			require.NoError(t, err)
			assert.True(t, math.IsNaN(got.Result))
			assert.Equal(t, "NaN", got.ResultText())
		})
	}
}

func TestStore_FailedEntry(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			entry := NewEntry("2 +")
			entry.ErrorCode = string(mcerror.CodeUnexpectedToken)
			entry.ErrorMessage = "unexpected end of input at position 3"
			require.NoError(t, s.Record(ctx, entry))

			got, err := s.Get(ctx, entry.ID)
			require.NoError(t, err)
			assert.True(t, got.Failed())
			assert.Equal(t, "", got.ResultText())
			assert.Equal(t, entry.ErrorMessage, got.ErrorMessage)
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

			for i, expr := range []string{"1", "2", "3", "4"} {
				e := NewEntry(expr)
				e.CreatedAt = base.Add(time.Duration(i) * time.Second)
				require.NoError(t, s.Record(ctx, e))
			}

			all, err := s.List(ctx, 0)
			require.NoError(t, err)
			require.Len(t, all, 4)
			assert.Equal(t, "4", all[0].Expression)
			assert.Equal(t, "1", all[3].Expression)

			limited, err := s.List(ctx, 2)
			require.NoError(t, err)
			require.Len(t, limited, 2)
			assert.Equal(t, "4", limited[0].Expression)
			assert.Equal(t, "3", limited[1].Expression)
		})
	}
}

func TestStore_CountAndClear(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, expr := range []string{"1", "2", "3"} {
				require.NoError(t, s.Record(ctx, NewEntry(expr)))
			}

			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			removed, err := s.Clear(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(3), removed)

			n, err = s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, n)
			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestStore_RecordRejectsDuplicateID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			entry := NewEntry("1 + 1")
			entry.Result = 2
			require.NoError(t, s.Record(ctx, entry))

			again := NewEntry("2 + 2")
			again.ID = entry.ID
			err := s.Record(ctx, again)
			require.Error(t, err)
			assert.True(t, mcerror.HasCode(err, mcerror.CodeValidationFailed))

			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			got, err := s.Get(ctx, entry.ID)
			require.NoError(t, err)
			assert.Equal(t, "1 + 1", got.Expression)

			_, err = s.Clear(ctx)
			require.NoError(t, err)
			assert.NoError(t, s.Record(ctx, again), "cleared IDs can be reused")
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "does-not-exist")
			require.Error(t, err)
			assert.True(t, mcerror.HasCode(err, mcerror.CodeNotFound))
		})
	}
}

func TestStore_RecordRejectsEmpty(t *testing.T) {
	s := NewMemoryStore()
	err := s.Record(context.Background(), &Entry{})
	require.Error(t, err)
	assert.True(t, mcerror.HasCode(err, mcerror.CodeInvalidInput))

	err = s.Record(context.Background(), nil)
	assert.Error(t, err)
}

func TestRecord_FillsIDAndTimestamp(t *testing.T) {
	s := NewMemoryStore()
	entry := &Entry{Expression: "1 + 1", Result: 2}
	require.NoError(t, s.Record(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestNew_Drivers(t *testing.T) {
	s, err := New(Config{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "sub", "h.db")})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = New(Config{Driver: "postgres"})
	require.Error(t, err)
	assert.True(t, mcerror.HasCode(err, mcerror.CodeInvalidConfig))
}
