package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/wordle-solver-api/internal/bundle"
	"github.com/phrazzld/wordle-solver-api/internal/config"
	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/service"
	"github.com/phrazzld/wordle-solver-api/internal/solver"
	"github.com/phrazzld/wordle-solver-api/internal/store"
	"github.com/phrazzld/wordle-solver-api/internal/wordlist"
)

// application holds all dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Table source; closer is non-nil when the store holds resources.
	store  store.Store
	closer io.Closer

	cache   *solver.FeedbackCache
	ranker  *solver.Ranker
	service service.SuggestionService
}

// newApplication creates a new application instance with all dependencies
// initialized. Missing data degrades the solver rather than failing startup:
// without tables every feedback is computed, without a starter list the
// opening move is ranked live, and without a word list every request
// answers with no suggestions.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	app.provisionTables(ctx)

	if err := app.openStore(); err != nil {
		logger.Error("Feedback table store unavailable, computing all feedback",
			"backend", cfg.Cache.Backend,
			"error", err)
	}

	words, err := wordlist.Load(cfg.Solver.WordlistPath)
	if err != nil {
		logger.Error("Failed to load word list", "error", err)
		words = []domain.Word{}
	}
	logger.Info("Word list loaded", "words", len(words))

	var starter []domain.Word
	if cfg.Solver.StarterCachePath != "" {
		starter, err = wordlist.LoadStarter(cfg.Solver.StarterCachePath, cfg.Solver.TopN)
		switch {
		case errors.Is(err, wordlist.ErrStarterNotFound):
			logger.Warn("Starter cache not found, opening move will be ranked live",
				"path", cfg.Solver.StarterCachePath)
		case err != nil:
			logger.Error("Failed to load starter cache", "error", err)
		default:
			logger.Info("Starter cache loaded", "suggestions", len(starter))
		}
	}

	app.cache = solver.NewFeedbackCache(app.store, solver.CacheConfig{
		MemoizeFallback:    cfg.Solver.MemoizeFallback,
		MaxMemoizedGuesses: cfg.Solver.MaxMemoizedGuesses,
		Vocabulary:         words,
	}, logger)

	// Players usually open with a suggested starter, and filtering on it
	// needs that guess's table first.
	if app.store != nil && len(starter) > 0 {
		found := app.cache.Preload(ctx, starter)
		logger.Info("Starter tables preloaded", "requested", len(starter), "found", found)
	}

	app.ranker = solver.NewRanker(app.cache, words, starter, solver.RankerConfig{
		SearchThreshold: cfg.Solver.SearchThreshold,
		TopN:            cfg.Solver.TopN,
		Workers:         cfg.Solver.Workers,
	}, logger)

	app.service = service.NewSuggestionService(app.cache, app.ranker, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// provisionTables unpacks the table archive into the cache directory when a
// source is configured and the directory is still empty. Failures are logged;
// the solver falls back to computing feedback.
func (app *application) provisionTables(ctx context.Context) {
	cfg := app.config.Cache
	if cfg.Backend != config.BackendFiles {
		return
	}
	if cfg.ZipURL == "" {
		app.logger.Warn("Cache zip URL not set, relying on existing tables", "dir", cfg.Dir)
		return
	}

	p := bundle.NewProvisioner(app.logger,
		bundle.WithAttempts(cfg.DownloadAttempts),
		bundle.WithBackoff(time.Second))
	if _, err := p.Provision(ctx, cfg.ZipURL, cfg.Dir); err != nil {
		app.logger.Error("Failed to provision feedback tables", "error", err)
	}
}

func (app *application) openStore() error {
	cfg := app.config.Cache
	switch cfg.Backend {
	case config.BackendBadger:
		s, err := store.OpenBadger(store.BadgerConfig{
			Path:     cfg.BadgerPath,
			ReadOnly: true,
			Logger:   app.logger,
		})
		if err != nil {
			return err
		}
		app.store = s
		app.closer = s
	case config.BackendFiles, "":
		app.store = store.NewFileStore(cfg.Dir, app.logger)
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.closer != nil {
		if err := app.closer.Close(); err != nil {
			app.logger.Error("Error closing feedback table store", "error", err)
		}
	}

	stats := app.cache.Stats()
	app.logger.Info("Application shutdown completed",
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
		"tables_loaded", stats.Loads)
}
