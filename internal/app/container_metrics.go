package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-relay/internal/metrics"
)

// registerer is where collectors built by the container are registered.
var registerer prometheus.Registerer = prometheus.DefaultRegisterer

type metricsOut struct {
	dig.Out
	RateLimitExceeded prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetries    prometheus.Counter     `name:"gateway_retries_total"`
	QuoteFallbacks    prometheus.Counter     `name:"tariff_quote_fallbacks_total"`
	DegradedPools     prometheus.Counter     `name:"assignment_degraded_pools_total"`
	Availability      *prometheus.CounterVec `name:"courier_availability_outcomes_total"`
	LifecycleActions  *prometheus.CounterVec `name:"delivery_lifecycle_actions_total"`
}

func newMetrics() (metricsOut, error) {
	out := metricsOut{
		RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
		GatewayRetries:    metrics.NewGatewayRetriesTotal(),
		QuoteFallbacks:    metrics.NewQuoteFallbacksTotal(),
		DegradedPools:     metrics.NewDegradedPoolsTotal(),
		Availability:      metrics.NewAvailabilityOutcomesTotal(),
		LifecycleActions:  metrics.NewLifecycleActionsTotal(),
	}
	err := metrics.Register(registerer,
		out.RateLimitExceeded,
		out.GatewayRetries,
		out.QuoteFallbacks,
		out.DegradedPools,
		out.Availability,
		out.LifecycleActions,
	)
	return out, err
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newMetrics)
}
