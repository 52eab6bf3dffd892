// Package availability lists the couriers the backend reports as available
// and keeps that list fresh while an assignment screen is open.
package availability

import (
	"context"
	"strconv"
	"time"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/domain"
	"delivery-relay/internal/logx"
)

// Kind tells how a Result was produced.
type Kind string

// Result kinds.
const (
	KindLive  Kind = "live"
	KindEmpty Kind = "empty"
	KindDemo  Kind = "demo"
)

// Result is an availability listing. Err records the fetch failure behind
// an Empty or Demo result.
type Result struct {
	Kind     Kind
	Couriers []domain.Courier
	Origin   domain.Coordinate
	Err      error
}

// Douala city centre, used when the caller has no position.
var defaultOrigin = domain.Coordinate{Lat: 4.0511, Lon: 9.7679}

// Config stores availability settings.
type Config struct {
	DefaultOrigin domain.Coordinate
	// DemoCouriers substitutes a synthetic list when the backend returns
	// nothing. Development only.
	DemoCouriers bool
	CacheTTL     time.Duration
	Timeout      time.Duration
}

// Service fetches and caches courier availability.
type Service struct {
	backend  lister
	cache    cache.Store
	cfg      Config
	logger   logx.Logger
	outcomes labeledCounter
}

// NewService creates an availability Service. store may be nil.
func NewService(backend lister, store cache.Store, cfg Config, logger logx.Logger, outcomes labeledCounter) *Service {
	if !cfg.DefaultOrigin.Known() {
		cfg.DefaultOrigin = defaultOrigin
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		backend:  backend,
		cache:    store,
		cfg:      cfg,
		logger:   logger.With(logx.String("component", "availability")),
		outcomes: outcomes,
	}
}

// Available returns the couriers around origin, served from the cache when
// possible. It never fails because the backend did: errors and empty lists
// become an Empty (or, in development, Demo) result. Only cancellation of
// ctx is returned as an error.
func (s *Service) Available(ctx context.Context, origin domain.Coordinate) (Result, error) {
	return s.fetch(ctx, origin, true)
}

// Fresh is Available without the cache read, used right before confirming
// an assignment.
func (s *Service) Fresh(ctx context.Context, origin domain.Coordinate) (Result, error) {
	return s.fetch(ctx, origin, false)
}

// Origin resolves an unknown coordinate to the configured default.
func (s *Service) Origin(c domain.Coordinate) domain.Coordinate {
	if c.Known() {
		return c
	}
	return s.cfg.DefaultOrigin
}

func (s *Service) fetch(ctx context.Context, origin domain.Coordinate, useCache bool) (Result, error) {
	origin = s.Origin(origin)
	key := cacheKey(origin)

	if useCache && s.cache != nil {
		var cached []domain.Courier
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("availability cache read failed", logx.Err(err))
		}
		if hit && len(cached) > 0 {
			return s.done(Result{Kind: KindLive, Couriers: cached, Origin: origin}), nil
		}
	}

	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	couriers, err := s.backend.AvailableCouriers(cctx, origin)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		s.logger.Warn("availability fetch failed",
			logx.Float64("lat", origin.Lat),
			logx.Float64("lon", origin.Lon),
			logx.Err(err),
		)
		return s.done(s.fallback(origin, err)), nil
	}
	if len(couriers) == 0 {
		return s.done(s.fallback(origin, nil)), nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, couriers, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("availability cache write failed", logx.Err(err))
		}
	}
	return s.done(Result{Kind: KindLive, Couriers: couriers, Origin: origin}), nil
}

func (s *Service) fallback(origin domain.Coordinate, err error) Result {
	if s.cfg.DemoCouriers {
		return Result{Kind: KindDemo, Couriers: DemoCouriers(origin), Origin: origin, Err: err}
	}
	return Result{Kind: KindEmpty, Couriers: []domain.Courier{}, Origin: origin, Err: err}
}

func (s *Service) done(r Result) Result {
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(string(r.Kind)).Inc()
	}
	return r
}

func cacheKey(c domain.Coordinate) string {
	return cache.Key(cache.ResourceCouriers,
		"lat", strconv.FormatFloat(c.Lat, 'f', 4, 64),
		"lon", strconv.FormatFloat(c.Lon, 'f', 4, 64),
	)
}
