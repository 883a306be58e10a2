package solver

import (
	"context"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

// Filter returns, in their original order, the candidates that would have
// produced observed had they been the secret for guess. It never adds words.
func Filter(
	ctx context.Context,
	cache *FeedbackCache,
	candidates []domain.Word,
	guess domain.Word,
	observed domain.Feedback,
) []domain.Word {
	t := cache.table(ctx, guess)

	kept := make([]domain.Word, 0, len(candidates))
	hits, misses := 0, 0
	for _, w := range candidates {
		fb, hit := cache.lookup(t, guess, w)
		if hit {
			hits++
		} else {
			misses++
		}
		if fb == observed {
			kept = append(kept, w)
		}
	}
	cache.record(hits, misses)
	return kept
}

// Apply folds history into words one observation at a time, in order, and
// returns the secrets still consistent with all of it.
func Apply(
	ctx context.Context,
	cache *FeedbackCache,
	words []domain.Word,
	history []domain.Observation,
) []domain.Word {
	candidates := words
	for _, obs := range history {
		candidates = Filter(ctx, cache, candidates, obs.Guess, obs.Feedback)
		if len(candidates) == 0 {
			break
		}
	}
	if len(history) == 0 {
		// Callers may mutate the result; never hand out the word list itself.
		candidates = append([]domain.Word(nil), words...)
	}
	return candidates
}
