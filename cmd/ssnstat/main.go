// SPDX-License-Identifier: MIT

// Command ssnstat runs the batch analysis configured by the YAML file named
// in SSNSTAT_CONFIG (default ssnstat.yaml).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/ssnstat/internal/config"
	"github.com/katalvlaran/ssnstat/internal/logger"
	"github.com/katalvlaran/ssnstat/internal/pipeline"
)

func main() {
	// 1. Load configuration
	path := config.Path()
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ssnstat: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Env, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ssnstat: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("configuration loaded", zap.String("path", path), zap.String("env", cfg.Env))

	// 3. Run until done or interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := pipeline.Run(logger.ContextWithLogger(ctx, log), cfg)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		_ = log.Sync()
		stop()
		os.Exit(1)
	}
	log.Info("reports written", zap.String("run_id", sum.RunID), zap.String("dir", cfg.Output.Dir))
}
