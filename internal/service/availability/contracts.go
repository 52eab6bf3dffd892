package availability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"delivery-relay/internal/domain"
)

// lister is the backend availability endpoint.
type lister interface {
	AvailableCouriers(ctx context.Context, origin domain.Coordinate) ([]domain.Courier, error)
}

// fetcher is what the poller needs from the Service.
type fetcher interface {
	Fresh(ctx context.Context, origin domain.Coordinate) (Result, error)
}

// scheduler is the subset of *cron.Cron used by the poller.
type scheduler interface {
	AddFunc(spec string, cmd func()) (cron.EntryID, error)
	Start()
	Stop() context.Context
}

type labeledCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}
