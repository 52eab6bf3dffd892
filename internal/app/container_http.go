package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-relay/internal/config"
	"delivery-relay/internal/http/handlers"
	"delivery-relay/internal/http/middleware/ratelimit"
	"delivery-relay/internal/http/pprofserver"
	"delivery-relay/internal/http/router"
	"delivery-relay/internal/logx"
)

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		handlers.New,
		handlers.NewLifecycleUsecase,
		handlers.NewPlanUsecase,
		handlers.NewSessionUsecase,
		handlers.NewEstimateUsecase,
		handlers.NewOrderHandler,
		handlers.NewAssignmentHandler,
		handlers.NewQuoteHandler,
		newRateLimiter,
		newRateLimitMiddleware,
		newDebugConfig,
		router.New,
		newHTTPServer,
	)
}

func newHTTPServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// detailed quotes and confirmations chain several backend calls
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newDebugConfig(cfg *config.Config) pprofserver.Config {
	return pprofserver.Config{Enabled: cfg.Pprof.Enabled, User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}
}

// newRateLimiter picks the per-client limiter. Probes and /metrics are never
// throttled, see router.New.
func newRateLimiter(cfg *config.Config, logger logx.Logger) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		logger.Info("rate limiting disabled")
		return ratelimit.NopLimiter{}
	}
	logger.Info("rate limiting enabled",
		logx.Float64("rate", rl.Rate),
		logx.Int("burst", rl.Burst),
		logx.Int("max_buckets", rl.MaxBuckets),
	)
	return ratelimit.NewTokenBucketLimiter(ratelimit.RealClock{}, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

type rateLimitIn struct {
	dig.In
	Logger   logx.Logger
	Rejected prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter  ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Rejected, in.Limiter)
}
