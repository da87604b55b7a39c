package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "menu:1", []byte("a"), time.Minute))
	require.NoError(t, m.Set(ctx, "menu:2", []byte("b"), 0))

	v, ok, err := m.Get(ctx, "menu:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), v)

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "menu:1")
	assert.False(t, ok, "entry should expire at ttl")

	_, ok, _ = m.Get(ctx, "menu:2")
	assert.True(t, ok, "zero ttl never expires")
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, m.Delete(ctx, "a", "missing"))

	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "b")
	assert.True(t, ok)
}
