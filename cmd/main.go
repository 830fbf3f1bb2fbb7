package main

import (
	"context"
	"customer-purchases/internal/app"
	"customer-purchases/internal/config"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envDev   = "dev"
	envProd  = "prod"
	envLocal = "local"
)

// @title Customer Purchases API
// @version 1.0
// @description Purchase ingestion with automatic customer registration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Server.Env)

	log.Info("Starting http", "env", cfg.Server.Env)

	application := app.New(log, cfg)

	go application.HTTPServer.MustRun()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	sign := <-stop

	log.Info("Application stopped", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Stop(ctx); err != nil {
		log.Error("failed to stop application", slog.String("error", err.Error()))
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envDev, envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
