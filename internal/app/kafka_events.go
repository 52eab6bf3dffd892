package app

import (
	"context"
	"errors"
	"time"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/events"
	"delivery-relay/internal/transport/kafka"
)

const eventHandleTimeout = 5 * time.Second

type eventHandler interface {
	Handle(ctx context.Context, e events.Event) error
}

// makeEventsKafka adapts the events processor to the consumer. Invalid events
// are reported as permanent so the consumer skips them.
func makeEventsKafka(p eventHandler, logger logx.Logger) kafka.HandleFunc {
	return func(ctx context.Context, e events.Event) error {
		hctx, cancel := context.WithTimeout(ctx, eventHandleTimeout)
		defer cancel()

		err := p.Handle(hctx, e)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperr.ErrInvalid):
			return kafka.Permanent(err)
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			logger.Debug("event handling failed",
				logx.Int64("order_id", e.OrderID),
				logx.String("status", e.Status),
				logx.Err(err),
			)
			return err
		}
	}
}
