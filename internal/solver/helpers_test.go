package solver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logBuffer is a concurrency-safe writer for capturing log output.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// failingStore reports every table as unreadable.
type failingStore struct{}

func (failingStore) Load(context.Context, domain.Word) (domain.Table, bool, error) {
	return nil, false, errors.New("corrupt feedback table: unexpected EOF")
}

// sampleWords is a small list with repeated letters and near-duplicates.
var sampleWords = domain.Words(
	"CRANE", "CRAVE", "SLATE", "SHAKE", "TRACE",
	"CRATE", "GRACE", "BRAVE", "STARE", "SPACE",
	"ABBEY", "KEBAB", "ERASE", "AROSE", "LLAMA",
	"HELLO", "SPEED", "ABIDE", "TEARS", "RATES",
)

// fullTables precomputes every guess's table with the oracle.
func fullTables(words []domain.Word) map[domain.Word]domain.Table {
	out := make(map[domain.Word]domain.Table, len(words))
	for _, g := range words {
		t := make(domain.Table, len(words))
		for _, s := range words {
			t[s] = Score(g, s)
		}
		out[g] = t
	}
	return out
}
