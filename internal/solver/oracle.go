package solver

import (
	"fmt"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

// Score computes the feedback for guess against secret.
//
// Exact matches are marked green first and consume their secret letter.
// Remaining guess positions are then scanned left to right; a position is
// yellow when an unconsumed occurrence of its letter is left in the secret,
// which that position then consumes. Everything else is black. A secret with
// k copies of a letter therefore yields at most k non-black marks for it.
//
// Both words must be five letters A-Z; anything else is a programming error
// and panics.
func Score(guess, secret domain.Word) domain.Feedback {
	if len(guess) != domain.WordLength || len(secret) != domain.WordLength {
		panic(fmt.Sprintf("solver: Score requires %d-letter words, got %q and %q",
			domain.WordLength, guess, secret))
	}

	var colors [domain.WordLength]domain.Color
	var unconsumed [26]uint8

	for i := 0; i < domain.WordLength; i++ {
		g, s := guess[i], secret[i]
		if !isLetter(g) || !isLetter(s) {
			panic(fmt.Sprintf("solver: Score requires letters A-Z, got %q and %q", guess, secret))
		}
		if g == s {
			colors[i] = domain.Green
			continue
		}
		unconsumed[s-'A']++
	}

	for i := 0; i < domain.WordLength; i++ {
		if colors[i] == domain.Green {
			continue
		}
		idx := guess[i] - 'A'
		if unconsumed[idx] > 0 {
			colors[i] = domain.Yellow
			unconsumed[idx]--
		}
	}

	return domain.FeedbackFromColors(colors)
}

func isLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
