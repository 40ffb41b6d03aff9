package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thereayou/rythmrun/internal/config"
	"github.com/thereayou/rythmrun/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "error").Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.LogLevel)

	srv, err := NewServer(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		log.Error(ctx, "server run error", "error", err)
		os.Exit(1)
	}
}
