package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/dig"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/config"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/events"
	"delivery-relay/internal/transport/kafka"
)

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerCache(container, requireSharedCache(b.connectCache)); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// requireSharedCache refuses the in-process store: the worker only
// invalidates entries, so it must share the service's Redis.
func requireSharedCache(
	connect func(context.Context, *config.Config, logx.Logger) (cache.Store, storeCloser, error),
) func(context.Context, *config.Config, logx.Logger) (cache.Store, storeCloser, error) {
	return func(ctx context.Context, cfg *config.Config, logger logx.Logger) (cache.Store, storeCloser, error) {
		if cfg.Cache.RedisAddr == "" {
			return nil, nil, errors.New("REDIS_ADDR is required: the worker invalidates the shared cache")
		}
		return connect(ctx, cfg, logger)
	}
}

// MustBuildWorkerContainer builds and returns the worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(store cache.Store, logger logx.Logger) *events.Processor {
			return events.NewProcessor(store, logger)
		},
		func(cfg *config.Config, p *events.Processor, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger,
				cfg.Kafka.Brokers,
				cfg.Kafka.GroupID,
				cfg.Kafka.Topic,
				makeEventsKafka(p, logger),
			)
		},
	)
}
