package domain

// Table maps secret words to the feedback a single guess produces against
// them. One Table exists per guess.
type Table map[Word]Feedback

// Observation is one history entry: a guess and the feedback it received.
type Observation struct {
	Guess    Word
	Feedback Feedback
}

// Suggestion is a scored guess produced while ranking.
type Suggestion struct {
	Guess   Word    `json:"guess"`
	Entropy float64 `json:"entropy"`
}

// SuggestionResult is what the suggestion service returns for a history.
type SuggestionResult struct {
	// Suggestions holds the ranked guesses, best first.
	Suggestions []Word
	// Remaining is the number of secrets still consistent with the history.
	Remaining int
	// Starter is true when the opening-move shortcut produced the suggestions.
	Starter bool
}
