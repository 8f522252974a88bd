//go:build !lambda
// +build !lambda

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rgehrsitz/taxregime/internal/api"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/logging"
)

func main() {
	// a missing .env file is fine; variables may be set directly
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Stage)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	regimes, err := config.NewInputParser().LoadRegimesOrDefault(cfg.RegimesFile)
	if err != nil {
		logger.Fatal("Failed to load regimes", zap.String("file", cfg.RegimesFile), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := api.NewServer(cfg, regimes, logger).Run(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
