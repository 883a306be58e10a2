package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordLength is the number of letters in every guess and secret.
const WordLength = 5

// Word is an uppercase five-letter word. Values produced by ParseWord are
// always valid; the zero value is not.
type Word string

// ParseWord trims and uppercases s and checks that it is exactly
// WordLength ASCII letters. It is safe for concurrent use.
func ParseWord(s string) (Word, error) {
	// A Caser may be stateful, so each call gets its own.
	w := cases.Upper(language.Und).String(strings.TrimSpace(s))
	if len(w) != WordLength {
		return "", NewValidationError("word", "must be exactly 5 letters", ErrInvalidWord)
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", NewValidationError("word", "must contain only letters A-Z", ErrInvalidWord)
		}
	}
	return Word(w), nil
}

// MustParseWord is like ParseWord but panics on invalid input.
// Intended for constants and tests.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic("domain: " + err.Error() + ": " + s)
	}
	return w
}

// Words converts a list of strings with MustParseWord.
func Words(ss ...string) []Word {
	out := make([]Word, len(ss))
	for i, s := range ss {
		out[i] = MustParseWord(s)
	}
	return out
}

// String returns the word as a plain string.
func (w Word) String() string {
	return string(w)
}

// Valid reports whether w satisfies the word invariants.
func (w Word) Valid() bool {
	p, err := ParseWord(string(w))
	return err == nil && p == w
}
