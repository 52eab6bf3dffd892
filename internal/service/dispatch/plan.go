// Package dispatch drives courier selection and assignment for an order
// that is ready to ship.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/cache"
	"delivery-relay/internal/domain"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/assignment"
	"delivery-relay/internal/service/availability"
)

// Hint carries the cities and position the caller already knows. It is
// only used when the backend cannot resolve the order geography.
type Hint struct {
	MerchantCity string
	ClientCity   string
	Origin       domain.Coordinate
}

// Geography sources.
const (
	SourceServer = "server"
	SourceHint   = "hint"
	SourceOrder  = "order"
)

// Plan is the assignment decision for one order.
type Plan struct {
	Order            domain.DeliveryOrder
	Mode             domain.AssignmentMode
	MerchantCity     string
	ClientCity       string
	MerchantDistrict string
	ClientDistrict   string
	Origin           domain.Coordinate
	Source           string
	Pools            assignment.Pools
	Availability     availability.Kind
}

// Service builds plans and opens assignment sessions.
type Service struct {
	backend  backend
	avail    availabilitySource
	quotes   detailedQuoter
	cache    invalidator
	logger   logx.Logger
	degraded counter
}

// NewService creates a dispatch Service. store and degraded may be nil.
func NewService(b backend, avail availabilitySource, quotes detailedQuoter, store invalidator, logger logx.Logger, degraded counter) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		backend:  b,
		avail:    avail,
		quotes:   quotes,
		cache:    store,
		logger:   logger.With(logx.String("component", "dispatch")),
		degraded: degraded,
	}
}

// Plan fetches the order, resolves its geography and builds the courier
// pools. The server-resolved geography always wins over the hint.
func (s *Service) Plan(ctx context.Context, orderID int64, hint Hint) (Plan, error) {
	if orderID <= 0 {
		return Plan{}, fmt.Errorf("%w: order id %d", apperr.ErrInvalid, orderID)
	}
	order, err := s.backend.Order(ctx, orderID)
	if err != nil {
		return Plan{}, fmt.Errorf("load order %d: %w", orderID, err)
	}

	p := Plan{Order: order}
	s.resolveGeography(ctx, &p, hint)
	p.Mode = assignment.Classify(p.MerchantCity, p.ClientCity)
	if err := order.CheckLegs(p.Mode); err != nil {
		s.logger.Warn("order legs do not match mode", logx.Int64("order_id", orderID), logx.Err(err))
	}

	res, err := s.avail.Available(ctx, p.Origin)
	if err != nil {
		return Plan{}, err
	}
	p.Origin = res.Origin
	p.Availability = res.Kind
	p.Pools = s.buildPools(orderID, p.MerchantCity, p.ClientCity, res)
	return p, nil
}

func (s *Service) resolveGeography(ctx context.Context, p *Plan, hint Hint) {
	info, err := s.backend.DeliveryInfo(ctx, p.Order.ID)
	if err == nil && strings.TrimSpace(info.Merchant.City) != "" && strings.TrimSpace(info.Client.City) != "" {
		p.Source = SourceServer
		p.MerchantCity, p.ClientCity = info.Merchant.City, info.Client.City
		p.MerchantDistrict, p.ClientDistrict = info.Merchant.District, info.Client.District
		p.Origin = info.Merchant.Location
		if !p.Origin.Known() {
			p.Origin = hint.Origin
		}
		if s.hintDisagrees(hint, info) {
			s.logger.Info("caller cities differ from server geography",
				logx.Int64("order_id", p.Order.ID),
				logx.String("hint_merchant_city", hint.MerchantCity),
				logx.String("hint_client_city", hint.ClientCity),
			)
		}
		return
	}
	if err != nil {
		s.logger.Warn("info-livraison unavailable, using caller hint",
			logx.Int64("order_id", p.Order.ID),
			logx.Err(err),
		)
	}

	p.Origin = hint.Origin
	if strings.TrimSpace(hint.MerchantCity) != "" && strings.TrimSpace(hint.ClientCity) != "" {
		p.Source = SourceHint
		p.MerchantCity, p.ClientCity = hint.MerchantCity, hint.ClientCity
		return
	}
	p.Source = SourceOrder
	p.MerchantCity, p.ClientCity = p.Order.Merchant.City, p.Order.Client.City
}

func (s *Service) hintDisagrees(hint Hint, info domain.DeliveryInfo) bool {
	if hint.MerchantCity == "" && hint.ClientCity == "" {
		return false
	}
	return assignment.Classify(hint.MerchantCity, hint.ClientCity) != assignment.Classify(info.Merchant.City, info.Client.City)
}

func (s *Service) buildPools(orderID int64, merchantCity, clientCity string, res availability.Result) assignment.Pools {
	pools := assignment.BuildPools(merchantCity, clientCity, res.Couriers)
	if pools.Degraded() && len(res.Couriers) > 0 {
		if s.degraded != nil {
			s.degraded.Inc()
		}
		s.logger.Warn("no courier in zone, offering full list",
			logx.Int64("order_id", orderID),
			logx.String("mode", string(pools.Mode)),
			logx.String("merchant_city", merchantCity),
			logx.String("client_city", clientCity),
		)
	}
	return pools
}

func (s *Service) invalidate(ctx context.Context, orderID int64) {
	if s.cache == nil {
		return
	}
	id := strconv.FormatInt(orderID, 10)
	for _, prefix := range []string{
		cache.Prefix(cache.ResourceOrders, "id", id),
		cache.Prefix(cache.ResourceInfo, "id", id),
		cache.Prefix(cache.ResourceCouriers),
	} {
		if err := s.cache.Invalidate(ctx, prefix); err != nil {
			s.logger.Warn("cache invalidation failed", logx.String("prefix", prefix), logx.Err(err))
		}
	}
}
