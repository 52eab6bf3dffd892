// Package metrics holds the relay's Prometheus collectors.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewAvailabilityOutcomesTotal counts courier availability reads by result kind (live, empty, demo).
func NewAvailabilityOutcomesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_availability_outcomes_total",
		Help: "Courier availability reads by result kind",
	}, []string{"kind"})
}

// NewDegradedPoolsTotal counts assignment pools that fell back to the full courier list.
func NewDegradedPoolsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_degraded_pools_total",
		Help: "Assignment pools offered without a courier in the target city",
	})
}

// NewQuoteFallbacksTotal counts checkout estimates served by the flat-fee heuristic.
func NewQuoteFallbacksTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tariff_quote_fallbacks_total",
		Help: "Checkout estimates computed without a backend quote",
	})
}

// NewLifecycleActionsTotal counts lifecycle actions by action and outcome (ok, error).
func NewLifecycleActionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_lifecycle_actions_total",
		Help: "Delivery lifecycle actions by action and outcome",
	}, []string{"action", "outcome"})
}

// Register registers collectors on reg. A collector that is already
// registered is not an error.
func Register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
