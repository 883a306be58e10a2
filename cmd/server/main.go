// Package main implements the entry point for the Wordle solver API server,
// which ranks next guesses by expected information gain over a lazily loaded
// cache of precomputed feedback tables.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/wordle-solver-api/internal/config"
	"github.com/phrazzld/wordle-solver-api/internal/platform/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Wordle solver API failed: %v", err)
	}
}

// run loads configuration, wires the application and serves until a shutdown
// signal arrives or ctx is canceled.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig reads config.yaml from the working directory, or the file
// named by WORDLE_CONFIG_FILE when set, and applies WORDLE_* overrides.
func loadAppConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := os.Getenv("WORDLE_CONFIG_FILE"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_backend", cfg.Cache.Backend)
	return cfg, nil
}
