package tariff

import (
	"context"

	"delivery-relay/internal/domain"
)

// quoter is the backend tariff endpoint.
type quoter interface {
	Quote(ctx context.Context, req domain.QuoteRequest) (domain.DeliveryQuote, error)
}

type counter interface {
	Inc()
}
