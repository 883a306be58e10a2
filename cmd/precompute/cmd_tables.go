package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/phrazzld/wordle-solver-api/internal/config"
	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/solver"
	"github.com/phrazzld/wordle-solver-api/internal/store"
	"github.com/phrazzld/wordle-solver-api/internal/wordlist"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type tablesOptions struct {
	wordlistPath string
	out          string
	backend      string
	gzip         bool
	workers      int
}

func newTablesCommand() *cobra.Command {
	opts := &tablesOptions{}
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Write one feedback table per guess",
		Long: `Score every word in the list as a guess against every word as a secret.

With the files backend each guess gets "<guess>.json" (or ".json.gz" with
--gzip) under --out, ready to be zipped and served as the cache archive.
With the badger backend --out is the database directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.wordlistPath, "wordlist", "w", "wordlist.txt", "Word list, one word per line")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "feedback_cache", "Output directory")
	cmd.Flags().StringVar(&opts.backend, "backend", config.BackendFiles, "Table backend (files or badger)")
	cmd.Flags().BoolVar(&opts.gzip, "gzip", false, "Compress table files (files backend only)")
	cmd.Flags().IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of tables computed concurrently")

	return cmd
}

func runTables(cmd *cobra.Command, opts *tablesOptions) error {
	logger := slog.Default()

	words, err := wordlist.Load(opts.wordlistPath)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("%s: %w", opts.wordlistPath, domain.ErrEmptyWordList)
	}

	var w store.Writer
	switch opts.backend {
	case config.BackendFiles:
		var fopts []store.FileStoreOption
		if opts.gzip {
			fopts = append(fopts, store.WithCompression())
		}
		w = store.NewFileStore(opts.out, logger, fopts...)
	case config.BackendBadger:
		db, err := store.OpenBadger(store.BadgerConfig{Path: opts.out, Logger: logger})
		if err != nil {
			return err
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.Error("failed to close badger database", "error", cerr)
			}
		}()
		w = db
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", opts.backend, config.BackendFiles, config.BackendBadger)
	}

	n, err := writeTables(cmd.Context(), w, words, opts.workers, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d feedback tables to %s\n", n, opts.out)
	return nil
}

// writeTables computes and stores the table of every guess in words.
func writeTables(
	ctx context.Context,
	w store.Writer,
	words []domain.Word,
	workers int,
	logger *slog.Logger,
) (int, error) {
	if workers <= 0 {
		workers = 1
	}

	var done atomic.Int64
	step := max(len(words)/20, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, guess := range words {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table := make(domain.Table, len(words))
			for _, secret := range words {
				table[secret] = solver.Score(guess, secret)
			}
			if err := w.Put(gctx, guess, table); err != nil {
				return fmt.Errorf("store table for %s: %w", guess, err)
			}
			if n := done.Add(1); n%int64(step) == 0 {
				logger.Info("feedback tables written", "done", n, "total", len(words))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(done.Load()), err
	}
	return len(words), nil
}
