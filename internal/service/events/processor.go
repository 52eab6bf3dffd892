// Package events keeps the query cache in step with backend status events.
package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/logx"
)

// Processor turns status events into cache invalidations.
type Processor struct {
	cache   Invalidator
	logger  logx.Logger
	factory *actionFactory
}

// NewProcessor creates a Processor.
func NewProcessor(store Invalidator, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{cache: store, logger: logger}
	p.factory = newActionFactory(p.onOrderMoved, p.onCourierMoved, p.onCourierPresence)
	return p
}

// Handle processes a single Event. Unknown statuses are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.logger.Debug("event status ignored", logx.String("status", e.Status), logx.Int64("order_id", e.OrderID))
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onOrderMoved(ctx context.Context, e Event) error {
	return p.invalidateOrder(ctx, e.OrderID)
}

func (p *Processor) onCourierMoved(ctx context.Context, e Event) error {
	return errors.Join(p.invalidateOrder(ctx, e.OrderID), p.invalidateCouriers(ctx))
}

func (p *Processor) onCourierPresence(ctx context.Context, _ Event) error {
	return p.invalidateCouriers(ctx)
}

func (p *Processor) invalidateOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return nil
	}
	id := strconv.FormatInt(orderID, 10)
	for _, prefix := range []string{
		cache.Prefix(cache.ResourceOrders, "id", id),
		cache.Prefix(cache.ResourceInfo, "id", id),
	} {
		if err := p.cache.Invalidate(ctx, prefix); err != nil {
			return fmt.Errorf("invalidate order %d: %w", orderID, err)
		}
	}
	return nil
}

func (p *Processor) invalidateCouriers(ctx context.Context) error {
	if err := p.cache.Invalidate(ctx, cache.Prefix(cache.ResourceCouriers)); err != nil {
		return fmt.Errorf("invalidate couriers: %w", err)
	}
	return nil
}
