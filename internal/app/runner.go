package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/dispatch"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(
		ctx context.Context,
		server *http.Server,
		sessions *dispatch.Registry,
		closeStore storeCloser,
		logger logx.Logger,
	) error {
		errCh := startServer(server, logger)
		select {
		case <-ctx.Done():
			logger.Info("shutting down delivery-relay")
		case err := <-errCh:
			closeResources(sessions, closeStore, server, logger)
			return err
		}
		gracefulShutdown(server, logger, shutdownTimeout)
		closeResources(sessions, closeStore, server, logger)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("delivery-relay listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(sessions *dispatch.Registry, closeStore storeCloser, server *http.Server, logger logx.Logger) {
	if sessions != nil {
		sessions.CloseAll()
	}
	if err := server.Close(); err != nil {
		logger.Warn("server close error", logx.Err(err))
	}
	if closeStore != nil {
		if err := closeStore(); err != nil {
			logger.Warn("cache close error", logx.Err(err))
		}
	}
}
