package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCorrupt(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "direct",
			err:      ErrCorrupt,
			expected: true,
		},
		{
			name:     "wrapped",
			err:      fmt.Errorf("load CRANE: %w", ErrCorrupt),
			expected: true,
		},
		{
			name:     "invalid entry alone",
			err:      ErrInvalidEntry,
			expected: false,
		},
		{
			name:     "other",
			err:      errors.New("disk on fire"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCorrupt(tt.err))
		})
	}
}
