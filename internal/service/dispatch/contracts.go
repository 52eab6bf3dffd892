package dispatch

import (
	"context"

	"delivery-relay/internal/domain"
	"delivery-relay/internal/service/availability"
)

// backend is the part of the REST gateway the assignment flow uses.
type backend interface {
	Order(ctx context.Context, orderID int64) (domain.DeliveryOrder, error)
	DeliveryInfo(ctx context.Context, orderID int64) (domain.DeliveryInfo, error)
	AssignSingle(ctx context.Context, a domain.SingleAssignment) (domain.AssignmentResult, error)
	AssignDual(ctx context.Context, a domain.DualAssignment) (domain.AssignmentResult, error)
}

type availabilitySource interface {
	Available(ctx context.Context, origin domain.Coordinate) (availability.Result, error)
	Fresh(ctx context.Context, origin domain.Coordinate) (availability.Result, error)
}

type detailedQuoter interface {
	Detailed(ctx context.Context, req domain.QuoteRequest) (domain.DeliveryQuote, error)
}

type invalidator interface {
	Invalidate(ctx context.Context, prefix string) error
}

type counter interface {
	Inc()
}
