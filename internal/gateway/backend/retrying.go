package backend

import (
	"context"
	"time"

	"delivery-relay/internal/domain"
	"delivery-relay/internal/logx"
)

type statusUpdater interface {
	UpdateStatus(ctx context.Context, orderID int64, status domain.DeliveryStatus) error
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry policy of RetryingStatusUpdater.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingStatusUpdater retries idempotent status updates on transient failures.
// Setting the same status twice is harmless, so only this write is retried;
// accept/refuse/start/complete are sent once.
type RetryingStatusUpdater struct {
	next    statusUpdater
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	wait    func(context.Context, time.Duration) bool
}

// NewRetryingStatusUpdater returns nil when next is nil.
func NewRetryingStatusUpdater(next statusUpdater, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingStatusUpdater {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingStatusUpdater{next: next, logger: logger, retries: retries, cfg: cfg, wait: waitWithContext}
}

// UpdateStatus forwards to the wrapped updater, retrying retryable errors.
func (u *RetryingStatusUpdater) UpdateStatus(ctx context.Context, orderID int64, status domain.DeliveryStatus) error {
	var lastErr error
	for attempt := 1; attempt <= u.cfg.MaxAttempts; attempt++ {
		err := u.next.UpdateStatus(ctx, orderID, status)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == u.cfg.MaxAttempts || !IsRetryable(err) {
			break
		}

		delay := backoff(u.cfg.BaseDelay, u.cfg.MaxDelay, attempt)
		if u.retries != nil {
			u.retries.Inc()
		}
		u.logger.Warn("status update retry",
			logx.Int64("order_id", orderID),
			logx.String("status", string(status)),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !u.wait(ctx, delay) {
			break
		}
	}
	return lastErr
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func waitWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
