package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/dig"

	"delivery-relay/internal/logx"
	"delivery-relay/internal/transport/kafka"
)

// WorkerRunner runs the status event consumer
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes status events until the container context is done.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type runnable interface {
	Run(ctx context.Context) error
	Close() error
}

func workerRun(
	ctx context.Context,
	logger logx.Logger,
	consumer *kafka.Consumer,
	closeStore storeCloser,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: KAFKA_BROKERS and KAFKA_TOPIC are required")
	}
	return runConsumer(ctx, logger, consumer, closeStore)
}

func runConsumer(ctx context.Context, logger logx.Logger, consumer runnable, closeStore storeCloser) error {
	defer closeWorker(logger, consumer, closeStore)

	logger.Info("delivery-relay worker started")
	return consumer.Run(ctx)
}

func closeWorker(logger logx.Logger, consumer runnable, closeStore storeCloser) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if closeStore != nil {
		if err := closeStore(); err != nil {
			logger.Error("cache close error", logx.Err(err))
		}
	}
}
