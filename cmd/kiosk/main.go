package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"vend_kiosk/internal/application"
	"vend_kiosk/internal/config"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(os.Stdout, cfg.App.LogFormat, cfg.App.LogLevel)
	slog.SetDefault(log)

	if err = application.Run(contextx.WithLogger(ctx, log), cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		cancel()
		os.Exit(1) //nolint:gocritic
	}

	log.Info("application stopped")
}
