package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

// Store is a source of precomputed feedback tables keyed by guess.
//
// Load returns (table, true, nil) when a table is present, (nil, false, nil)
// when none exists for the guess, and a non-nil error when a table exists but
// could not be read. Implementations must be safe for concurrent use.
type Store interface {
	Load(ctx context.Context, guess domain.Word) (domain.Table, bool, error)
}

// Writer persists full tables. Used by the precompute tooling.
type Writer interface {
	Put(ctx context.Context, guess domain.Word, table domain.Table) error
}

// decodeTable parses the JSON object form {"CRANE":"bbgbg", ...} and checks
// every key is a valid word.
func decodeTable(data []byte) (domain.Table, error) {
	var raw map[string]domain.Feedback
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	table := make(domain.Table, len(raw))
	for secret, fb := range raw {
		w, err := domain.ParseWord(secret)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %q", ErrCorrupt, ErrInvalidEntry, secret)
		}
		table[w] = fb
	}
	return table, nil
}

func encodeTable(table domain.Table) ([]byte, error) {
	data, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("encode feedback table: %w", err)
	}
	return data, nil
}
