package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c, err := New(Config{MaxItems: 2})
	require.NoError(t, err)
	assert.True(t, c.Enabled())

	c.Set("2+3*4", 14.0)
	value, ok := c.Get("2+3*4")
	require.True(t, ok)
	assert.Equal(t, 14.0, value)

	_, ok = c.Get("1+1")
	assert.False(t, ok)

	hits, misses, rate := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.InDelta(t, 0.5, rate, 1e-9)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(Config{MaxItems: 2})
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	evicted := c.Set("c", 3)

	assert.True(t, evicted)
	assert.Equal(t, 2, c.Size())
	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(Config{MaxItems: 0})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	assert.False(t, c.Set("a", 1))
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}
