package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/service"
)

// MockSuggestionService implements service.SuggestionService for testing
type MockSuggestionService struct {
	// Custom behavior functions
	SuggestFn  func(ctx context.Context, history []domain.Observation) (*domain.SuggestionResult, error)
	FeedbackFn func(ctx context.Context, guess, secret domain.Word) (domain.Feedback, error)
	StatusFn   func() service.Status

	// Default response values
	Result *domain.SuggestionResult
	Err    error

	// Call tracking for verification
	SuggestCalls struct {
		mu        sync.Mutex
		Count     int
		Histories [][]domain.Observation
	}

	FeedbackCalls struct {
		mu      sync.Mutex
		Count   int
		Guesses []domain.Word
		Secrets []domain.Word
	}
}

var _ service.SuggestionService = (*MockSuggestionService)(nil)

// Suggest implements the service.SuggestionService interface
func (m *MockSuggestionService) Suggest(
	ctx context.Context,
	history []domain.Observation,
) (*domain.SuggestionResult, error) {
	m.SuggestCalls.mu.Lock()
	m.SuggestCalls.Count++
	m.SuggestCalls.Histories = append(m.SuggestCalls.Histories, history)
	m.SuggestCalls.mu.Unlock()

	if m.SuggestFn != nil {
		return m.SuggestFn(ctx, history)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &domain.SuggestionResult{Suggestions: []domain.Word{}}, nil
}

// Feedback implements the service.SuggestionService interface
func (m *MockSuggestionService) Feedback(
	ctx context.Context,
	guess, secret domain.Word,
) (domain.Feedback, error) {
	m.FeedbackCalls.mu.Lock()
	m.FeedbackCalls.Count++
	m.FeedbackCalls.Guesses = append(m.FeedbackCalls.Guesses, guess)
	m.FeedbackCalls.Secrets = append(m.FeedbackCalls.Secrets, secret)
	m.FeedbackCalls.mu.Unlock()

	if m.FeedbackFn != nil {
		return m.FeedbackFn(ctx, guess, secret)
	}
	return 0, m.Err
}

// Status implements the service.SuggestionService interface
func (m *MockSuggestionService) Status() service.Status {
	if m.StatusFn != nil {
		return m.StatusFn()
	}
	return service.Status{}
}

// SuggestCount returns how many times Suggest was called.
func (m *MockSuggestionService) SuggestCount() int {
	m.SuggestCalls.mu.Lock()
	defer m.SuggestCalls.mu.Unlock()
	return m.SuggestCalls.Count
}

// LastHistory returns the history passed to the most recent Suggest call.
func (m *MockSuggestionService) LastHistory() []domain.Observation {
	m.SuggestCalls.mu.Lock()
	defer m.SuggestCalls.mu.Unlock()
	if len(m.SuggestCalls.Histories) == 0 {
		return nil
	}
	return m.SuggestCalls.Histories[len(m.SuggestCalls.Histories)-1]
}
