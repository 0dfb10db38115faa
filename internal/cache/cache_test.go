package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/datajud-bridge/internal/datajud"
)

func response(total int) *datajud.SearchResponse {
	return &datajud.SearchResponse{Hits: datajud.Hits{Total: datajud.Total{Value: total}}}
}

func TestCacheGetSet(t *testing.T) {
	c := NewCache(10, time.Minute)
	require.True(t, c.Enabled())

	key := GenerateCacheKey("api_publica_trf1", "12345678920234011234")
	assert.Equal(t, "processo:api_publica_trf1:12345678920234011234", key)

	_, found := c.Get(key)
	assert.False(t, found)

	require.NoError(t, c.Set(key, response(1)))

	got, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, 1, got.Hits.Total.Value)

	stats := c.Stats()
	assert.True(t, stats.Enabled)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestCacheRejectsNil(t *testing.T) {
	c := NewCache(10, time.Minute)
	assert.Error(t, c.Set("k", nil))
}

func TestCacheEvictsWhenFull(t *testing.T) {
	c := NewCache(2, time.Minute)

	require.NoError(t, c.Set("a", response(1)))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, c.Set("b", response(2)))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, c.Set("c", response(3)))

	assert.Equal(t, 2, c.Stats().Size)
	_, found := c.Get("c")
	assert.True(t, found)
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewCache(2, time.Minute)

	require.NoError(t, c.Set("a", response(1)))
	require.NoError(t, c.Set("b", response(2)))
	require.NoError(t, c.Set("b", response(3)))

	_, foundA := c.Get("a")
	got, foundB := c.Get("b")
	assert.True(t, foundA)
	require.True(t, foundB)
	assert.Equal(t, 3, got.Hits.Total.Value)
}

func TestCacheExpires(t *testing.T) {
	c := NewCache(10, 20*time.Millisecond)
	require.NoError(t, c.Set("a", response(1)))

	time.Sleep(40 * time.Millisecond)

	_, found := c.Get("a")
	assert.False(t, found)
}

func TestDisabledCache(t *testing.T) {
	for _, c := range []Cache{NewCache(0, time.Minute), NewCache(10, 0)} {
		assert.False(t, c.Enabled())
		require.NoError(t, c.Set("a", response(1)))
		_, found := c.Get("a")
		assert.False(t, found)
		assert.Equal(t, CacheStats{}, c.Stats())
	}
}
