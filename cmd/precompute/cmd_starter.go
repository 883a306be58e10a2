package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/solver"
	"github.com/phrazzld/wordle-solver-api/internal/store"
	"github.com/phrazzld/wordle-solver-api/internal/wordlist"
	"github.com/spf13/cobra"
)

type starterOptions struct {
	wordlistPath string
	cacheDir     string
	out          string
	top          int
	workers      int
}

func newStarterCommand() *cobra.Command {
	opts := &starterOptions{}
	cmd := &cobra.Command{
		Use:   "starter",
		Short: "Rank the full word list and store the best opening guesses",
		Long: `Rank every word as an opening guess against the full word list and write
the top entries with their entropies as the starter cache.

This is the slowest ranking the solver ever does, which is why the server
answers the opening move from this file instead. Pointing --cache-dir at
precomputed tables avoids recomputing feedback, at the cost of holding every
loaded table in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStarter(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.wordlistPath, "wordlist", "w", "wordlist.txt", "Word list, one word per line")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "Directory of precomputed feedback tables (optional)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "starter_cache.json", "Output file")
	cmd.Flags().IntVar(&opts.top, "top", solver.DefaultRankerConfig().TopN, "Number of opening guesses to keep")
	cmd.Flags().IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of concurrent scorers")

	return cmd
}

func runStarter(cmd *cobra.Command, opts *starterOptions) error {
	logger := slog.Default()

	if opts.top <= 0 {
		return fmt.Errorf("--top must be positive, got %d", opts.top)
	}

	words, err := wordlist.Load(opts.wordlistPath)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("%s: %w", opts.wordlistPath, domain.ErrEmptyWordList)
	}

	var src store.Store
	if opts.cacheDir != "" {
		src = store.NewFileStore(opts.cacheDir, logger)
	}

	// Every guess is visited once, so memoized entries would never be read.
	cache := solver.NewFeedbackCache(src, solver.CacheConfig{}, logger)
	ranker := solver.NewRanker(cache, words, nil, solver.RankerConfig{
		TopN:    opts.top,
		Workers: opts.workers,
	}, logger)

	scored, err := ranker.RankSuggestions(cmd.Context(), words)
	if err != nil {
		return err
	}
	scored = scored[:min(opts.top, len(scored))]

	if err := wordlist.WriteStarter(opts.out, scored); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d opening guesses to %s\n", len(scored), opts.out)
	for i, s := range scored {
		fmt.Fprintf(out, "%3d. %s  %.4f bits\n", i+1, s.Guess, s.Entropy)
	}
	return nil
}
