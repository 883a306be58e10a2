package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

// referenceScore is a direct rendition of the consumption rule used to
// cross-check Score: consumed letters are blanked out of copies of both words.
func referenceScore(guess, secret domain.Word) string {
	fb := []byte("bbbbb")
	g := []byte(guess)
	s := []byte(secret)
	for i := range g {
		if g[i] == s[i] {
			fb[i] = 'g'
			g[i], s[i] = 0, 0
		}
	}
	for i := range g {
		if g[i] == 0 {
			continue
		}
		for j := range s {
			if s[j] == g[i] {
				fb[i] = 'y'
				s[j] = 0
				break
			}
		}
	}
	return string(fb)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		secret string
		want   string
	}{
		{name: "slate against crane", guess: "SLATE", secret: "CRANE", want: "bbgbg"},
		{name: "repeated E is marked once", guess: "ERASE", secret: "AROSE", want: "bgygg"},
		{name: "second copy goes black", guess: "SPEED", secret: "ABIDE", want: "bbyby"},
		{name: "two yellows for two copies", guess: "LLAMA", secret: "HELLO", want: "yybbb"},
		{name: "green consumes before yellow", guess: "ABBEY", secret: "KEBAB", want: "yygyb"},
		{name: "exact match", guess: "CRANE", secret: "CRANE", want: "ggggg"},
		{name: "no shared letters", guess: "FJORD", secret: "SLATE", want: "bbbbb"},
		{name: "anagram", guess: "TEARS", secret: "RATES", want: "yyyyg"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(domain.Word(tc.guess), domain.Word(tc.secret))
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestScore_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	// A small alphabet makes repeated letters common.
	const alphabet = "ABCDE"
	randomWord := func() domain.Word {
		b := make([]byte, domain.WordLength)
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return domain.Word(b)
	}

	for n := 0; n < 5000; n++ {
		guess, secret := randomWord(), randomWord()
		fb := Score(guess, secret)

		assert.Equal(t, referenceScore(guess, secret), fb.String(), "%s vs %s", guess, secret)
		assert.Equal(t, fb, Score(guess, secret), "Score must be deterministic")
		assert.Equal(t, domain.AllGreen, Score(guess, guess))

		nonBlack := make(map[byte]int)
		for i := 0; i < domain.WordLength; i++ {
			if guess[i] == secret[i] {
				assert.Equal(t, domain.Green, fb.At(i), "exact match must be green: %s vs %s", guess, secret)
			}
			if fb.At(i) != domain.Black {
				nonBlack[guess[i]]++
			}
		}
		for letter, marks := range nonBlack {
			limit := min(countByte(guess, letter), countByte(secret, letter))
			assert.LessOrEqual(t, marks, limit, "letter %c in %s vs %s", letter, guess, secret)
		}
	}
}

func TestScore_PanicsOnMalformedInput(t *testing.T) {
	assert.Panics(t, func() { Score("CRAN", "CRANE") })
	assert.Panics(t, func() { Score("CRANE", "") })
	assert.Panics(t, func() { Score("crane", "CRANE") })
}

func countByte(w domain.Word, b byte) int {
	n := 0
	for i := 0; i < len(w); i++ {
		if w[i] == b {
			n++
		}
	}
	return n
}
