package app

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/dig"
	"golang.org/x/oauth2"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/config"
	"delivery-relay/internal/domain"
	"delivery-relay/internal/gateway/backend"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/availability"
	"delivery-relay/internal/service/dispatch"
	"delivery-relay/internal/service/lifecycle"
	"delivery-relay/internal/service/tariff"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig   func() (*config.Config, error)
	connectCache func(context.Context, *config.Config, logx.Logger) (cache.Store, storeCloser, error)
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig:   config.Load,
		connectCache: connectCache,
		logFatalf:    log.Fatalf,
	}
}

// WithConfig replaces config loading, mostly for tests.
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithCacheConnect sets the cache connection function
func (b *ContainerBuilder) WithCacheConnect(
	fn func(context.Context, *config.Config, logx.Logger) (cache.Store, storeCloser, error),
) *ContainerBuilder {
	if fn != nil {
		b.connectCache = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerCache(container, b.connectCache); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the service container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, load func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		load,
		NewLogger,
	)
}

func registerCache(
	container *dig.Container,
	connect func(context.Context, *config.Config, logx.Logger) (cache.Store, storeCloser, error),
) error {
	return provideAll(container, connect)
}

func registerGateway(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) oauth2.TokenSource {
			return backend.NewTokenSource(cfg.Backend.TokenFile, cfg.Backend.Token)
		},
		func(cfg *config.Config, tokens oauth2.TokenSource, logger logx.Logger) (*backend.Client, error) {
			return backend.NewClient(backend.Config{
				BaseURL: cfg.Backend.BaseURL,
				Timeout: cfg.Backend.Timeout,
			}, tokens, logger)
		},
		func(in statusUpdaterIn) *backend.RetryingStatusUpdater {
			return backend.NewRetryingStatusUpdater(in.Client, in.Logger, in.Retries, backend.RetryConfig{
				MaxAttempts: in.Config.StatusRetry.MaxAttempts,
				BaseDelay:   in.Config.StatusRetry.BaseDelay,
				MaxDelay:    in.Config.StatusRetry.MaxDelay,
			})
		},
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		newTariffService,
		newAvailabilityService,
		newDispatchService,
		func(cfg *config.Config, svc *dispatch.Service, logger logx.Logger) *dispatch.Registry {
			return dispatch.NewRegistry(svc, dispatch.RegistryConfig{
				PollInterval: cfg.Availability.PollInterval,
				IdleTTL:      cfg.Availability.SessionIdleTTL,
			}, logger)
		},
		newLifecycleController,
	)
}

func newTariffService(in tariffIn) *tariff.Service {
	return tariff.NewService(in.Client, tariff.Config{
		FreeShippingThreshold: in.Config.Tariff.FreeShippingThreshold,
		FlatFee:               in.Config.Tariff.FlatFee,
	}, in.Logger, in.Fallbacks)
}

func newAvailabilityService(in availabilityIn) *availability.Service {
	return availability.NewService(in.Client, in.Store, availability.Config{
		DefaultOrigin: domain.Coordinate{Lat: in.Config.Availability.DefaultLat, Lon: in.Config.Availability.DefaultLon},
		DemoCouriers:  in.Config.Availability.DemoCouriers,
		CacheTTL:      in.Config.Cache.TTL,
	}, in.Logger, in.Outcomes)
}

func newDispatchService(in dispatchIn) *dispatch.Service {
	return dispatch.NewService(in.Client, in.Availability, in.Tariff, in.Store, in.Logger, in.Degraded)
}

func newLifecycleController(in lifecycleIn) *lifecycle.Controller {
	return lifecycle.NewController(in.Client, in.Statuses, in.Store, lifecycle.Config{
		CacheTTL: in.Config.Cache.TTL,
	}, in.Logger, in.Actions)
}
