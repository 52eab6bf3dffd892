package app

import (
	"io"
	"log/slog"
	"os"

	"delivery-relay/internal/config"
	"delivery-relay/internal/logx"
)

var logOutput io.Writer = os.Stdout

// NewLogger builds the JSON logger at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	base := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logx.ParseLevel(cfg.LogLevel),
	}))
	return logx.NewSlogAdapter(base)
}
