package app

import (
	"context"
	"fmt"
	"time"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/config"
	"delivery-relay/internal/logx"
)

// storeCloser releases the cache connection on shutdown.
type storeCloser func() error

var newRedis = func(ctx context.Context, cfg cache.RedisConfig) (cache.Store, storeCloser, error) {
	r, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}

const (
	cacheConnectRetries = 5
	cacheConnectDelay   = time.Second
)

// connectCache returns a Redis store when REDIS_ADDR is set and an in-process
// store otherwise.
func connectCache(ctx context.Context, cfg *config.Config, logger logx.Logger) (cache.Store, storeCloser, error) {
	if cfg.Cache.RedisAddr == "" {
		logger.Info("cache: using in-memory store")
		return cache.NewMemory(), func() error { return nil }, nil
	}
	return connectRedisWithRetry(ctx, cache.RedisConfig{
		Addr:      cfg.Cache.RedisAddr,
		Password:  cfg.Cache.RedisPassword,
		DB:        cfg.Cache.RedisDB,
		Namespace: cfg.Cache.RedisNamespace,
	}, logger, cacheConnectRetries, cacheConnectDelay)
}

func connectRedisWithRetry(
	ctx context.Context,
	rc cache.RedisConfig,
	logger logx.Logger,
	retries int,
	delay time.Duration,
) (cache.Store, storeCloser, error) {
	var lastErr error
	for i := 1; i <= retries; i++ {
		store, closeFn, err := newRedis(ctx, rc)
		if err == nil {
			logger.Info("redis connected", logx.Int("attempt", i), logx.String("addr", rc.Addr))
			return store, closeFn, nil
		}
		lastErr = err
		logger.Warn("redis connect failed",
			logx.Int("attempt", i),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, nil, fmt.Errorf("redis connect failed after %d attempts: %w", retries, lastErr)
}
