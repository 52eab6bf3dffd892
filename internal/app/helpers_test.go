package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/logx"
	testlog "delivery-relay/internal/testutil"
)

func swapNewRedis(t *testing.T, fn func(context.Context, cache.RedisConfig) (cache.Store, storeCloser, error)) {
	t.Helper()
	prev := newRedis
	newRedis = fn
	t.Cleanup(func() { newRedis = prev })
}

func TestConnectCache_MemoryWithoutAddr(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.RedisAddr = ""

	store, closeFn, err := connectCache(context.Background(), cfg, logx.Nop())
	require.NoError(t, err)
	assert.IsType(t, &cache.Memory{}, store)
	assert.NoError(t, closeFn())
}

func TestConnectRedisWithRetry_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	swapNewRedis(t, func(context.Context, cache.RedisConfig) (cache.Store, storeCloser, error) {
		attempts++
		if attempts < 3 {
			return nil, nil, errors.New("connection refused")
		}
		return cache.NewMemory(), func() error { return nil }, nil
	})
	rec := testlog.New()

	store, _, err := connectRedisWithRetry(context.Background(), cache.RedisConfig{Addr: "redis:6379"}, rec.Logger(), 5, time.Millisecond)
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, rec.Count("redis connect failed"))

	e, ok := rec.Find("info", "redis connected")
	require.True(t, ok)
	v, _ := e.Field("attempt")
	assert.Equal(t, 3, v)
}

func TestConnectRedisWithRetry_GivesUp(t *testing.T) {
	swapNewRedis(t, func(context.Context, cache.RedisConfig) (cache.Store, storeCloser, error) {
		return nil, nil, errors.New("connection refused")
	})

	_, _, err := connectRedisWithRetry(context.Background(), cache.RedisConfig{}, logx.Nop(), 2, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConnectRedisWithRetry_StopsOnCancel(t *testing.T) {
	swapNewRedis(t, func(context.Context, cache.RedisConfig) (cache.Store, storeCloser, error) {
		return nil, nil, errors.New("connection refused")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := connectRedisWithRetry(ctx, cache.RedisConfig{}, logx.Nop(), 5, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
