package solver

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// RankerConfig holds the tunables of the entropy ranker.
type RankerConfig struct {
	// SearchThreshold is the largest candidate count for which only the
	// candidates themselves are scored as guesses. Above it the whole word
	// list is searched.
	SearchThreshold int

	// TopN is how many guesses Rank returns.
	TopN int

	// Workers bounds the goroutines scoring the search space.
	Workers int
}

// DefaultRankerConfig returns the standard ranker settings.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		SearchThreshold: 30,
		TopN:            20,
		Workers:         runtime.NumCPU(),
	}
}

// Ranker orders guesses by the expected information they yield about the
// secret, given the current candidate set.
type Ranker struct {
	cache   *FeedbackCache
	words   []domain.Word
	starter []domain.Word
	cfg     RankerConfig
	logger  *slog.Logger
}

// NewRanker creates a Ranker over the full word list. starter is the
// precomputed opening list; pass nil when none is available. Zero or
// negative config values fall back to the defaults.
func NewRanker(
	cache *FeedbackCache,
	words []domain.Word,
	starter []domain.Word,
	cfg RankerConfig,
	logger *slog.Logger,
) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultRankerConfig()
	if cfg.SearchThreshold <= 0 {
		cfg.SearchThreshold = defaults.SearchThreshold
	}
	if cfg.TopN <= 0 {
		cfg.TopN = defaults.TopN
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	return &Ranker{
		cache:   cache,
		words:   words,
		starter: starter,
		cfg:     cfg,
		logger:  logger.With("component", "ranker"),
	}
}

// Words returns the full word list. Callers must not modify it.
func (r *Ranker) Words() []domain.Word {
	return r.words
}

// StarterSize is the number of precomputed opening suggestions.
func (r *Ranker) StarterSize() int {
	return len(r.starter)
}

// Config returns the effective configuration.
func (r *Ranker) Config() RankerConfig {
	return r.cfg
}

// IsOpening reports whether candidates is the untouched full word list, the
// one input answered from the starter set.
func (r *Ranker) IsOpening(candidates []domain.Word) bool {
	return len(r.starter) > 0 && slices.Equal(candidates, r.words)
}

// Rank returns up to TopN guesses, best first. An empty candidate set yields
// an empty result; it means the history contradicts itself. The only error
// is the context's.
func (r *Ranker) Rank(ctx context.Context, candidates []domain.Word) ([]domain.Word, error) {
	if len(candidates) == 0 {
		return []domain.Word{}, nil
	}

	if r.IsOpening(candidates) {
		starterShortcuts.Inc()
		r.logger.Info("using starter cache for initial suggestion", "suggestions", len(r.starter))
		return slices.Clone(r.starter), nil
	}

	scored, err := r.RankSuggestions(ctx, candidates)
	if err != nil {
		return nil, err
	}

	n := min(r.cfg.TopN, len(scored))
	out := make([]domain.Word, n)
	for i := range out {
		out[i] = scored[i].Guess
	}
	return out, nil
}

// RankSuggestions scores every guess in the search space and returns them
// sorted by descending entropy. Equal scores keep search-space order.
func (r *Ranker) RankSuggestions(ctx context.Context, candidates []domain.Word) ([]domain.Suggestion, error) {
	if len(candidates) == 0 {
		return []domain.Suggestion{}, nil
	}

	start := time.Now()
	space := r.searchSpace(candidates)
	r.logger.Debug("calculating suggestions",
		"candidates", len(candidates),
		"search_space", len(space))

	scored := make([]domain.Suggestion, len(space))
	chunk := (len(space) + r.cfg.Workers - 1) / r.cfg.Workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for lo := 0; lo < len(space); lo += chunk {
		hi := min(lo+chunk, len(space))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				scored[i] = domain.Suggestion{
					Guess:   space[i],
					Entropy: r.ExpectedEntropy(gctx, space[i], candidates),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank %d candidates: %w", len(candidates), err)
	}

	slices.SortStableFunc(scored, func(a, b domain.Suggestion) int {
		return cmp.Compare(b.Entropy, a.Entropy)
	})

	rankDuration.Observe(time.Since(start).Seconds())
	searchSpaceSize.Observe(float64(len(space)))
	return scored, nil
}

// ExpectedEntropy is the Shannon entropy, in bits, of the feedback
// distribution guess produces across candidates. It is 0 for no candidates
// or when every candidate gives the same feedback, and at most
// log2(len(candidates)).
func (r *Ranker) ExpectedEntropy(ctx context.Context, guess domain.Word, candidates []domain.Word) float64 {
	return ExpectedEntropy(ctx, r.cache, guess, candidates)
}

// ExpectedEntropy computes the entropy of guess's feedback partition of
// candidates using cache.
func ExpectedEntropy(ctx context.Context, cache *FeedbackCache, guess domain.Word, candidates []domain.Word) float64 {
	if len(candidates) == 0 {
		return 0
	}

	t := cache.table(ctx, guess)
	var counts [domain.NumFeedbacks]int
	hits, misses := 0, 0
	for _, c := range candidates {
		fb, hit := cache.lookup(t, guess, c)
		if hit {
			hits++
		} else {
			misses++
		}
		counts[fb]++
	}
	cache.record(hits, misses)

	total := float64(len(candidates))
	entropy := 0.0
	for _, n := range counts {
		if n == 0 {
			continue
		}
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// searchSpace picks the guesses worth scoring. With few candidates left the
// candidates themselves are searched; otherwise the full list is.
func (r *Ranker) searchSpace(candidates []domain.Word) []domain.Word {
	if len(candidates) <= r.cfg.SearchThreshold || len(r.words) == 0 {
		return candidates
	}
	return r.words
}
