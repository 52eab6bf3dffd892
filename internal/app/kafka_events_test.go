package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/events"
	"delivery-relay/internal/transport/kafka"
)

type handlerFunc func(context.Context, events.Event) error

func (f handlerFunc) Handle(ctx context.Context, e events.Event) error { return f(ctx, e) }

func TestMakeEventsKafka(t *testing.T) {
	t.Parallel()

	transient := errors.New("redis timeout")
	tests := []struct {
		name      string
		err       error
		permanent bool
		wantErr   error
	}{
		{name: "ok"},
		{name: "invalid is permanent", err: fmt.Errorf("bad event: %w", apperr.ErrInvalid), permanent: true, wantErr: apperr.ErrInvalid},
		{name: "transient is retried", err: transient, wantErr: transient},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got events.Event
			h := makeEventsKafka(handlerFunc(func(ctx context.Context, e events.Event) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				got = e
				return tt.err
			}), logx.Nop())

			err := h(context.Background(), events.Event{OrderID: 7, Status: "LIVREE"})
			assert.Equal(t, int64(7), got.OrderID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.permanent, kafka.IsPermanent(err))
		})
	}
}

func TestMakeEventsKafka_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := makeEventsKafka(handlerFunc(func(ctx context.Context, _ events.Event) error {
		return ctx.Err()
	}), logx.Nop())

	assert.ErrorIs(t, h(ctx, events.Event{OrderID: 1}), context.Canceled)
}
