package api

import (
	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

// HistoryEntry is one played guess and the colors it received, e.g.
// {"guess": "slate", "feedback": "bbgbg"}. Entries with an empty guess are
// ignored, which lets clients send unfilled board rows unchanged.
type HistoryEntry struct {
	Guess    string `json:"guess"    validate:"omitempty,wordle_word"`
	Feedback string `json:"feedback" validate:"required_with=Guess,omitempty,wordle_feedback"`
}

// SuggestionRequest defines the payload for POST /api/suggestions.
type SuggestionRequest struct {
	History []HistoryEntry `json:"history" validate:"max=64,dive"`
}

// SuggestionResponse is the ranked list of next guesses, best first.
type SuggestionResponse struct {
	Suggestions []domain.Word `json:"suggestions"`
	// Remaining is how many secrets are still consistent with the history.
	Remaining int `json:"remaining"`
	// Starter is true when the precomputed opening list was returned.
	Starter bool `json:"starter"`
}

// FeedbackRequest defines the payload for POST /api/feedback.
type FeedbackRequest struct {
	Guess  string `json:"guess"  validate:"required,wordle_word"`
	Secret string `json:"secret" validate:"required,wordle_word"`
}

// FeedbackResponse carries the five-letter color code, e.g. "bbgbg".
type FeedbackResponse struct {
	Feedback domain.Feedback `json:"feedback"`
}

// StatusResponse is served at the root path.
type StatusResponse struct {
	Status       string        `json:"status"`
	Words        int           `json:"words"`
	StarterWords int           `json:"starter_words"`
	Cache        CacheResponse `json:"cache"`
}

// CacheResponse summarizes feedback cache activity since startup.
type CacheResponse struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Loads  uint64 `json:"loads"`
	Tables int    `json:"tables"`
}

// observations converts the request history into solver input, skipping
// entries without a guess.
func (req SuggestionRequest) observations() ([]domain.Observation, error) {
	history := make([]domain.Observation, 0, len(req.History))
	for _, e := range req.History {
		if e.Guess == "" {
			continue
		}
		guess, err := domain.ParseWord(e.Guess)
		if err != nil {
			return nil, err
		}
		fb, err := domain.ParseFeedback(e.Feedback)
		if err != nil {
			return nil, err
		}
		history = append(history, domain.Observation{Guess: guess, Feedback: fb})
	}
	return history, nil
}
