package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/podstreak/podstreak/internal/app"
	"github.com/podstreak/podstreak/internal/config"
	"github.com/podstreak/podstreak/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One tick per invocation when an external cron owns the cadence.
	if cfg.EvalRunOnce {
		_, err = app.Evaluator.Run(ctx, time.Now().UTC())
		if err != nil {
			slog.Error("evaluation run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("evaluator starting", "interval", cfg.EvalInterval, "lookback", cfg.EvalLookback, "env", cfg.AppEnv)

	ticker := time.NewTicker(cfg.EvalInterval)
	defer ticker.Stop()

	// Evaluate immediately, then on every tick. A failed run is logged and
	// retried at the next tick; all writes are conditional so nothing is
	// lost between runs.
	for {
		_, err = app.Evaluator.Run(ctx, time.Now().UTC())
		if err != nil {
			slog.Error("evaluation run failed", "error", err)
		}

		select {
		case <-ctx.Done():
			slog.Info("evaluator stopping")
			return
		case <-ticker.C:
		}
	}
}
