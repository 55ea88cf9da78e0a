package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bfmr_bot/internal/application"
	"bfmr_bot/internal/config"
	"bfmr_bot/pkg/contextx"
	"bfmr_bot/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	log.Info("application stopped")
}
