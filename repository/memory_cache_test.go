package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "loan:1")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "loan:1", "payload"))
	got, ok := cache.Get(ctx, "loan:1")
	assert.True(t, ok)
	assert.Equal(t, "payload", got)
}

func TestMemoryCache_Expires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "loan:1", "payload"))

	now = now.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "loan:1")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = cache.Get(ctx, "loan:1")
	assert.False(t, ok)
	assert.Empty(t, cache.data)
}
