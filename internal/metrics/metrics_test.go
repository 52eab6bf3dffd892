package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"delivery-relay/internal/metrics"
)

func TestRegister_ToleratesDuplicates(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	retries := metrics.NewGatewayRetriesTotal()

	require.NoError(t, metrics.Register(reg, retries, metrics.NewLifecycleActionsTotal()))
	require.NoError(t, metrics.Register(reg, retries))

	retries.Inc()
	require.InDelta(t, 1, testutil.ToFloat64(retries), 1e-9)
}

func TestRegister_ConflictingDescriptor(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg, metrics.NewDegradedPoolsTotal()))

	clash := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "assignment_degraded_pools_total",
		Help: "different help",
	})
	require.Error(t, metrics.Register(reg, clash))
}

func TestLabeledCounters(t *testing.T) {
	t.Parallel()

	outcomes := metrics.NewAvailabilityOutcomesTotal()
	outcomes.WithLabelValues("demo").Inc()
	outcomes.WithLabelValues("demo").Inc()
	require.InDelta(t, 2, testutil.ToFloat64(outcomes.WithLabelValues("demo")), 1e-9)

	actions := metrics.NewLifecycleActionsTotal()
	actions.WithLabelValues("accept", "ok").Inc()
	require.InDelta(t, 0, testutil.ToFloat64(actions.WithLabelValues("accept", "error")), 1e-9)
}
