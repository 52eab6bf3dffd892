package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/domain"
	testlog "delivery-relay/internal/testutil"
)

type statusUpdaterFunc func(context.Context, int64, domain.DeliveryStatus) error

func (f statusUpdaterFunc) UpdateStatus(ctx context.Context, id int64, s domain.DeliveryStatus) error {
	return f(ctx, id, s)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc()         { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 { return atomic.LoadInt64(&c.n) }

var errUnavailable = &StatusError{Code: 503, Err: apperr.ErrUpstream}

func TestRetryingStatusUpdater_NilNext(t *testing.T) {
	t.Parallel()
	require.Nil(t, NewRetryingStatusUpdater(nil, nil, nil, RetryConfig{}))
}

func TestRetryingStatusUpdater_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var calls int32
	next := statusUpdaterFunc(func(context.Context, int64, domain.DeliveryStatus) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errUnavailable
		}
		return nil
	})
	ctr := &counterStub{}
	u := NewRetryingStatusUpdater(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})

	require.NoError(t, u.UpdateStatus(context.Background(), 7, domain.StatusReady))
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	require.EqualValues(t, 2, ctr.Count())
	require.Equal(t, 2, rec.Count("status update retry"))

	e, ok := rec.Find("warn", "status update retry")
	require.True(t, ok)
	v, _ := e.Field("status")
	require.Equal(t, "PRETE", v)
}

func TestRetryingStatusUpdater_NoRetryOnConflict(t *testing.T) {
	t.Parallel()

	var calls int32
	conflict := &StatusError{Code: 409, Err: apperr.ErrConflict}
	next := statusUpdaterFunc(func(context.Context, int64, domain.DeliveryStatus) error {
		atomic.AddInt32(&calls, 1)
		return conflict
	})
	u := NewRetryingStatusUpdater(next, nil, nil, RetryConfig{MaxAttempts: 4})

	err := u.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	require.True(t, errors.Is(err, apperr.ErrConflict))
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRetryingStatusUpdater_DefaultsToTwoAttempts(t *testing.T) {
	t.Parallel()

	var calls int32
	next := statusUpdaterFunc(func(context.Context, int64, domain.DeliveryStatus) error {
		atomic.AddInt32(&calls, 1)
		return errUnavailable
	})
	u := NewRetryingStatusUpdater(next, nil, nil, RetryConfig{})

	err := u.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	require.ErrorIs(t, err, apperr.ErrUpstream)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRetryingStatusUpdater_StopsOnCanceledWait(t *testing.T) {
	t.Parallel()

	var calls int32
	next := statusUpdaterFunc(func(context.Context, int64, domain.DeliveryStatus) error {
		atomic.AddInt32(&calls, 1)
		return errUnavailable
	})
	u := NewRetryingStatusUpdater(next, nil, nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: time.Second})
	u.wait = func(context.Context, time.Duration) bool { return false }

	err := u.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	require.ErrorIs(t, err, apperr.ErrUpstream)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	require.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	require.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 6))
}
