package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) *RedisCache {
	host := os.Getenv("TEST_REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("TEST_REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	c, err := NewRedisCache(Config{Host: host, Port: port, Prefix: "sportstracker_test"})
	if err != nil {
		t.Skipf("Skipping integration test: redis not available: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache_SetGet(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	key := KeyFor("https://example.test/scoreboard?limit=200")
	require.NoError(t, c.Set(ctx, key, []byte(`{"events":[]}`), time.Minute))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"events":[]}`, string(got))
}

func TestRedisCache_Miss(t *testing.T) {
	c := setupTestCache(t)

	got, ok, err := c.Get(context.Background(), KeyFor("https://example.test/never-written"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisCache_Expires(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	key := KeyFor("https://example.test/short-lived")
	require.NoError(t, c.Set(ctx, key, []byte("x"), 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisCache_RequiresHost(t *testing.T) {
	_, err := NewRedisCache(Config{})
	assert.Error(t, err)
}

func TestNoopCache(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}

func TestKeyFor(t *testing.T) {
	a := KeyFor("https://example.test/a?x=1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, KeyFor("https://example.test/a?x=1"))
	assert.NotEqual(t, a, KeyFor("https://example.test/a?x=2"))
}
