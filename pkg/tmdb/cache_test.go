package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerCache_GetPut(t *testing.T) {
	cache, err := OpenCache(CacheConfig{InMemory: true})
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get("movie/603/credits")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put("movie/603/credits", []byte(`{"cast":[]}`)))

	body, ok, err := cache.Get("movie/603/credits")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"cast":[]}`, string(body))
}

func TestBadgerCache_OnDisk(t *testing.T) {
	dir := t.TempDir()

	cache, err := OpenCache(CacheConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, cache.Put("person/2975/movie_credits", []byte("x")))
	require.NoError(t, cache.Close())

	reopened, err := OpenCache(CacheConfig{Dir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	body, ok, err := reopened.Get("person/2975/movie_credits")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(body))
}

func TestOpenCache_RequiresDir(t *testing.T) {
	_, err := OpenCache(CacheConfig{})
	assert.Error(t, err)
}
