package backend

import (
	"context"
	"net/http"

	"delivery-relay/internal/domain"
)

// Quote requests a segmented tariff quote.
func (c *Client) Quote(ctx context.Context, req domain.QuoteRequest) (domain.DeliveryQuote, error) {
	var resp quoteResponseDTO
	if err := c.do(ctx, http.MethodPost, "delivery/tarifs/quote", nil, toQuoteRequestDTO(req), &resp); err != nil {
		return domain.DeliveryQuote{}, err
	}
	return resp.toDomain(), nil
}
