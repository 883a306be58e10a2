package domain

import (
	"strings"
)

// Color is the classification of a single letter position.
type Color uint8

// Valid colors. The numeric values are the base-3 digits of a Feedback code.
const (
	Black Color = iota
	Yellow
	Green
)

// Symbol returns the single-letter wire form of the color.
func (c Color) Symbol() byte {
	switch c {
	case Green:
		return 'g'
	case Yellow:
		return 'y'
	default:
		return 'b'
	}
}

// Feedback is the color code for one guess against one secret, packed as a
// base-3 number where position i carries weight 3^i. Two codes are equal
// iff every position has the same color.
type Feedback uint8

// NumFeedbacks is the number of distinct feedback codes (3^5).
const NumFeedbacks = 243

// AllGreen is the feedback of a guess against itself.
const AllGreen Feedback = NumFeedbacks - 1

var pow3 = [WordLength]Feedback{1, 3, 9, 27, 81}

// FeedbackFromColors packs per-position colors into a Feedback.
func FeedbackFromColors(colors [WordLength]Color) Feedback {
	var f Feedback
	for i, c := range colors {
		f += Feedback(c) * pow3[i]
	}
	return f
}

// ParseFeedback parses a five-letter code over b, y, g (case-insensitive).
func ParseFeedback(s string) (Feedback, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != WordLength {
		return 0, NewValidationError("feedback", "must be exactly 5 characters", ErrInvalidFeedback)
	}
	var colors [WordLength]Color
	for i := 0; i < WordLength; i++ {
		switch s[i] {
		case 'g':
			colors[i] = Green
		case 'y':
			colors[i] = Yellow
		case 'b':
			colors[i] = Black
		default:
			return 0, NewValidationError("feedback", "must contain only b, y or g", ErrInvalidFeedback)
		}
	}
	return FeedbackFromColors(colors), nil
}

// MustParseFeedback is like ParseFeedback but panics on invalid input.
func MustParseFeedback(s string) Feedback {
	f, err := ParseFeedback(s)
	if err != nil {
		panic("domain: " + err.Error() + ": " + s)
	}
	return f
}

// At returns the color at position i.
func (f Feedback) At(i int) Color {
	return Color((f / pow3[i]) % 3)
}

// Colors unpacks the code into per-position colors.
func (f Feedback) Colors() [WordLength]Color {
	var colors [WordLength]Color
	for i := range colors {
		colors[i] = f.At(i)
	}
	return colors
}

// String renders the code as five letters, e.g. "bbgbg".
func (f Feedback) String() string {
	var b [WordLength]byte
	for i := range b {
		b[i] = f.At(i).Symbol()
	}
	return string(b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (f Feedback) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Feedback) UnmarshalText(text []byte) error {
	parsed, err := ParseFeedback(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
