package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/platform/logger"
	"github.com/phrazzld/wordle-solver-api/internal/solver"
)

// SuggestionService answers solver queries for the API layer.
type SuggestionService interface {
	// Suggest folds history into the word list and ranks the next guesses.
	//
	// Returns:
	//   - (*domain.SuggestionResult, nil): ranked guesses, possibly empty when
	//     the history contradicts itself
	//   - (nil, *domain.ValidationError): an observation holds an invalid word
	//     or feedback code
	//   - (nil, *ServiceError): ranking was interrupted, usually because ctx
	//     was canceled
	Suggest(ctx context.Context, history []domain.Observation) (*domain.SuggestionResult, error)

	// Feedback returns the colors guess would receive if secret were the answer.
	Feedback(ctx context.Context, guess, secret domain.Word) (domain.Feedback, error)

	// Status reports what the service is running with.
	Status() Status
}

// Status is a snapshot of the solver state.
type Status struct {
	Words   int
	Starter int
	Cache   solver.CacheStats
}

// Verify interface compliance at compile time
var _ SuggestionService = (*suggestionServiceImpl)(nil)

type suggestionServiceImpl struct {
	cache  *solver.FeedbackCache
	ranker *solver.Ranker
	logger *slog.Logger
}

// NewSuggestionService creates a SuggestionService backed by cache and ranker.
func NewSuggestionService(
	cache *solver.FeedbackCache,
	ranker *solver.Ranker,
	logger *slog.Logger,
) SuggestionService {
	if cache == nil {
		panic("cache cannot be nil")
	}
	if ranker == nil {
		panic("ranker cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &suggestionServiceImpl{
		cache:  cache,
		ranker: ranker,
		logger: logger.With(slog.String("component", "suggestion_service")),
	}
}

// Suggest implements SuggestionService.Suggest.
func (s *suggestionServiceImpl) Suggest(
	ctx context.Context,
	history []domain.Observation,
) (*domain.SuggestionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for i, obs := range history {
		if err := validateObservation(i, obs); err != nil {
			log.Debug("rejecting history entry", slog.Int("index", i), slog.String("error", err.Error()))
			return nil, err
		}
	}

	candidates := solver.Apply(ctx, s.cache, s.ranker.Words(), history)
	opening := s.ranker.IsOpening(candidates)

	log.Debug("filtered candidates",
		slog.Int("history", len(history)),
		slog.Int("candidates", len(candidates)))

	suggestions, err := s.ranker.Rank(ctx, candidates)
	if err != nil {
		return nil, NewSuggestError("failed to rank candidates", err)
	}

	return &domain.SuggestionResult{
		Suggestions: suggestions,
		Remaining:   len(candidates),
		Starter:     opening,
	}, nil
}

// Feedback implements SuggestionService.Feedback.
func (s *suggestionServiceImpl) Feedback(
	ctx context.Context,
	guess, secret domain.Word,
) (domain.Feedback, error) {
	if !guess.Valid() {
		return 0, domain.NewValidationError("guess", "must be exactly 5 letters A-Z", domain.ErrInvalidWord)
	}
	if !secret.Valid() {
		return 0, domain.NewValidationError("secret", "must be exactly 5 letters A-Z", domain.ErrInvalidWord)
	}
	return s.cache.Get(ctx, guess, secret), nil
}

// Status implements SuggestionService.Status.
func (s *suggestionServiceImpl) Status() Status {
	return Status{
		Words:   len(s.ranker.Words()),
		Starter: s.ranker.StarterSize(),
		Cache:   s.cache.Stats(),
	}
}

func validateObservation(i int, obs domain.Observation) error {
	if !obs.Guess.Valid() {
		return domain.NewValidationError(fmt.Sprintf("history[%d].guess", i),
			"must be exactly 5 letters A-Z", domain.ErrInvalidWord)
	}
	if obs.Feedback >= domain.NumFeedbacks {
		return domain.NewValidationError(fmt.Sprintf("history[%d].feedback", i),
			"is not a valid feedback code", domain.ErrInvalidFeedback)
	}
	return nil
}
