// Package wordlist reads the static inputs of the solver: the list of valid
// five-letter words and the precomputed opening suggestions.
package wordlist

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

// ErrStarterNotFound is returned by LoadStarter when the starter file does
// not exist. Callers treat it as "no shortcut available".
var ErrStarterNotFound = errors.New("starter cache not found")

// Load reads one word per line from path. Lines are trimmed and uppercased;
// anything that is not five letters A-Z is skipped, and only the first
// occurrence of a repeated word is kept.
func Load(path string) ([]domain.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return words, nil
}

// Read parses a word list from r using the same rules as Load.
func Read(r io.Reader) ([]domain.Word, error) {
	seen := make(map[domain.Word]struct{})
	words := make([]domain.Word, 0, 1024)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w, err := domain.ParseWord(sc.Text())
		if err != nil {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

type starterEntry struct {
	Guess   string  `json:"guess"`
	Entropy float64 `json:"entropy"`
}

// LoadStarter reads the precomputed opening suggestions, best first, and
// keeps at most topN of them. A topN of zero or less keeps all of them.
// Entries whose guess is not a valid word are dropped.
func LoadStarter(path string, topN int) ([]domain.Word, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrStarterNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read starter cache %s: %w", path, err)
	}

	var entries []starterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode starter cache %s: %w", path, err)
	}

	starter := make([]domain.Word, 0, len(entries))
	for _, e := range entries {
		w, err := domain.ParseWord(e.Guess)
		if err != nil {
			continue
		}
		starter = append(starter, w)
		if topN > 0 && len(starter) == topN {
			break
		}
	}
	return starter, nil
}

// WriteStarter stores suggestions in the format LoadStarter reads. The file
// is written to a temporary sibling first and renamed into place.
func WriteStarter(path string, suggestions []domain.Suggestion) error {
	data, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode starter cache: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create starter cache dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write starter cache %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("install starter cache %s: %w", path, err)
	}
	return nil
}
