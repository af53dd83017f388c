package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briidgedotone/narra/internal/app"
	"github.com/briidgedotone/narra/pkg/logger"
	"go.uber.org/fx"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log := logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})

	service := fx.New(
		fx.Logger(log),
		app.Module,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.Start(ctx); err != nil {
		log.Error("Failed to start narra", "error", err)
		os.Exit(1)
	}
	log.Info("narra is running")

	<-ctx.Done()
	log.Info("Shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := service.Stop(stopCtx); err != nil {
		log.Error("Failed to stop narra", "error", err)
		os.Exit(1)
	}
}
