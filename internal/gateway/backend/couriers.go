package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"delivery-relay/internal/domain"
)

// AvailableCouriers lists the couriers the backend considers available around origin.
func (c *Client) AvailableCouriers(ctx context.Context, origin domain.Coordinate) ([]domain.Courier, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(origin.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(origin.Lon, 'f', -1, 64))

	var raw []CourierRaw
	if err := c.do(ctx, http.MethodGet, "ecommerce/livreur/disponibles", q, nil, &raw); err != nil {
		return nil, err
	}

	out := make([]domain.Courier, 0, len(raw))
	for _, r := range raw {
		if r.ID <= 0 {
			continue
		}
		out = append(out, NormalizeCourier(r))
	}
	return out, nil
}
