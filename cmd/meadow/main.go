// Package main is the entry point for the Meadow terrain demo.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/xlab/closer"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/game"
	"github.com/Faultbox/meadow/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	// SIGINT and SIGTERM run the bound cleanups and exit. GL objects are
	// left to the driver in that case; they may only be freed on this thread.
	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(func() {
		cancel()
		logger.Info("shutting down")
		logger.Sync()
	})

	logger.Info("=== Meadow ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		closer.Exit(1)
	}

	if err := g.Run(ctx); err != nil {
		logger.Error("main loop error", zap.Error(err))
		g.Close()
		closer.Exit(1)
	}

	g.Close()
	logger.Info("closed normally")
	closer.Close()
}
