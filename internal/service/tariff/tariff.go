// Package tariff requests segmented delivery quotes from the backend.
package tariff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/domain"
	"delivery-relay/internal/logx"
)

// Config holds the flat shipping heuristic used when no quote is available.
type Config struct {
	FreeShippingThreshold float64
	FlatFee               float64
	Timeout               time.Duration
}

// Estimate is a checkout shipping estimate. Quote is nil when Fallback is set.
type Estimate struct {
	Amount   float64
	Quote    *domain.DeliveryQuote
	Fallback bool
}

// Service wraps the quote endpoint with validation and the fallback policy.
type Service struct {
	backend   quoter
	cfg       Config
	validate  *validator.Validate
	logger    logx.Logger
	fallbacks counter
}

// NewService creates a tariff Service.
func NewService(backend quoter, cfg Config, logger logx.Logger, fallbacks counter) *Service {
	if cfg.FreeShippingThreshold <= 0 {
		cfg.FreeShippingThreshold = 50000
	}
	if cfg.FlatFee < 0 {
		cfg.FlatFee = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		backend:   backend,
		cfg:       cfg,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger.With(logx.String("component", "tariff")),
		fallbacks: fallbacks,
	}
}

// Quote normalizes and validates req, then asks the backend for a quote.
// A breakdown whose parts do not add up to the total is logged but returned
// as is: the backend total is authoritative.
func (s *Service) Quote(ctx context.Context, req domain.QuoteRequest) (domain.DeliveryQuote, error) {
	req = req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return domain.DeliveryQuote{}, validationError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	q, err := s.backend.Quote(ctx, req)
	if err != nil {
		return domain.DeliveryQuote{}, err
	}
	if !q.Consistent(domain.QuoteTolerance) {
		s.logger.Warn("quote breakdown does not match total",
			logx.Float64("total", q.Total),
			logx.Float64("parts_sum", q.PartsSum()),
			logx.String("type", req.DeliveryType),
		)
	}
	return q, nil
}

// Estimate is the checkout path: any failure falls back to the flat
// heuristic instead of blocking the caller.
func (s *Service) Estimate(ctx context.Context, req domain.QuoteRequest) Estimate {
	q, err := s.Quote(ctx, req)
	if err == nil {
		return Estimate{Amount: q.Total, Quote: &q}
	}

	amount := s.Heuristic(req.OrderAmount)
	if s.fallbacks != nil {
		s.fallbacks.Inc()
	}
	s.logger.Warn("quote unavailable, using flat fee",
		logx.Float64("order_amount", req.OrderAmount),
		logx.Float64("fee", amount),
		logx.Err(err),
	)
	return Estimate{Amount: amount, Fallback: true}
}

// Heuristic is free shipping at or above the threshold, the flat fee below.
func (s *Service) Heuristic(orderAmount float64) float64 {
	if orderAmount >= s.cfg.FreeShippingThreshold {
		return 0
	}
	return s.cfg.FlatFee
}

// Detailed is the inter-city quote shown before a paid assignment. Errors
// are surfaced, never replaced by a guess.
func (s *Service) Detailed(ctx context.Context, req domain.QuoteRequest) (domain.DeliveryQuote, error) {
	q, err := s.Quote(ctx, req)
	if err == nil {
		return q, nil
	}
	if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrUnauthorized) || errors.Is(err, apperr.ErrUpstream) {
		return domain.DeliveryQuote{}, fmt.Errorf("detailed quote: %w", err)
	}
	return domain.DeliveryQuote{}, fmt.Errorf("detailed quote: %w: %w", apperr.ErrUpstream, err)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("%w: %s failed %q", apperr.ErrInvalid, f.Field(), f.Tag())
	}
	return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
}
