package solver

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/store"
	"golang.org/x/sync/singleflight"
)

// CacheConfig controls how the feedback cache treats values it had to compute.
type CacheConfig struct {
	// MemoizeFallback writes oracle results for misses back into the guess's
	// table. It never changes results, only how often the oracle runs.
	MemoizeFallback bool

	// MaxMemoizedGuesses caps how many guess tables accept write-back.
	// Zero means no cap beyond the vocabulary.
	MaxMemoizedGuesses int

	// Vocabulary lists the guesses whose tables are retained. Any other
	// guess is answered by the oracle without touching the store or growing
	// the cache. A nil Vocabulary retains every guess; a non-nil empty one
	// retains none.
	Vocabulary []domain.Word
}

// DefaultCacheConfig returns a CacheConfig with memoization enabled and uncapped.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MemoizeFallback: true,
	}
}

// CacheStats is a snapshot of cache activity.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Loads  uint64
	Tables int
}

// guessTable holds the secret -> feedback entries for one guess.
type guessTable struct {
	mu      sync.RWMutex
	entries domain.Table
	memoize bool
}

func (t *guessTable) get(secret domain.Word) (domain.Feedback, bool) {
	t.mu.RLock()
	fb, ok := t.entries[secret]
	t.mu.RUnlock()
	return fb, ok
}

func (t *guessTable) put(secret domain.Word, fb domain.Feedback) {
	t.mu.Lock()
	t.entries[secret] = fb
	t.mu.Unlock()
}

// FeedbackCache serves feedback from precomputed per-guess tables and falls
// back to Score when a table has no entry. Tables are loaded from the store
// lazily, at most once per guess; concurrent first requests share one load.
//
// A FeedbackCache is safe for concurrent use.
type FeedbackCache struct {
	store  store.Store
	cfg    CacheConfig
	logger *slog.Logger

	mu     sync.RWMutex
	tables map[domain.Word]*guessTable
	flight singleflight.Group

	// vocabulary is nil when every guess is retained.
	vocabulary map[domain.Word]struct{}

	memoizing atomic.Int64
	hits      atomic.Uint64
	misses    atomic.Uint64
	loads     atomic.Uint64
}

// NewFeedbackCache creates a cache over src. A nil src is valid and means
// no precomputed data is available; every lookup is then computed.
func NewFeedbackCache(src store.Store, cfg CacheConfig, logger *slog.Logger) *FeedbackCache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &FeedbackCache{
		store:  src,
		cfg:    cfg,
		logger: logger.With("component", "feedback_cache"),
		tables: make(map[domain.Word]*guessTable),
	}
	if cfg.Vocabulary != nil {
		c.vocabulary = make(map[domain.Word]struct{}, len(cfg.Vocabulary))
		for _, w := range cfg.Vocabulary {
			c.vocabulary[w] = struct{}{}
		}
	}
	return c
}

// Get returns the feedback for guess against secret. It never fails: any
// problem with the store is logged and the oracle answers instead.
func (c *FeedbackCache) Get(ctx context.Context, guess, secret domain.Word) domain.Feedback {
	t := c.table(ctx, guess)
	fb, hit := c.lookup(t, guess, secret)
	if hit {
		c.record(1, 0)
	} else {
		c.record(0, 1)
	}
	return fb
}

// record adds a batch of lookup outcomes to the counters.
func (c *FeedbackCache) record(hits, misses int) {
	c.hits.Add(uint64(hits))
	c.misses.Add(uint64(misses))
	recordLookups(hits, misses)
}

// Preload loads the tables for guesses ahead of first use and returns how
// many of them were found in the store.
func (c *FeedbackCache) Preload(ctx context.Context, guesses []domain.Word) int {
	found := 0
	for _, g := range guesses {
		if ctx.Err() != nil {
			break
		}
		t := c.table(ctx, g)
		t.mu.RLock()
		if len(t.entries) > 0 {
			found++
		}
		t.mu.RUnlock()
	}
	return found
}

// Stats returns a snapshot of cache counters.
func (c *FeedbackCache) Stats() CacheStats {
	c.mu.RLock()
	n := len(c.tables)
	c.mu.RUnlock()
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Loads:  c.loads.Load(),
		Tables: n,
	}
}

// lookup answers from t or, on a miss, from the oracle. It reports whether
// the table served the value.
func (c *FeedbackCache) lookup(t *guessTable, guess, secret domain.Word) (domain.Feedback, bool) {
	if fb, ok := t.get(secret); ok {
		return fb, true
	}
	fb := Score(guess, secret)
	if t.memoize {
		t.put(secret, fb)
	}
	return fb, false
}

// table returns the table for guess, loading it on first use. Guesses
// outside the vocabulary get an empty table that is never retained.
func (c *FeedbackCache) table(ctx context.Context, guess domain.Word) *guessTable {
	if t, ok := c.cached(guess); ok {
		return t
	}
	if !c.retains(guess) {
		return &guessTable{entries: domain.Table{}}
	}

	v, _, _ := c.flight.Do(guess.String(), func() (interface{}, error) {
		if t, ok := c.cached(guess); ok {
			return t, nil
		}

		entries, publish := c.load(ctx, guess)
		t := &guessTable{entries: entries}
		if !publish {
			// Not retained, so write-back would be wasted.
			return t, nil
		}
		t.memoize = c.acceptsWriteBack()

		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.tables[guess]; ok {
			return existing, nil
		}
		c.tables[guess] = t
		return t, nil
	})
	return v.(*guessTable)
}

func (c *FeedbackCache) cached(guess domain.Word) (*guessTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[guess]
	return t, ok
}

func (c *FeedbackCache) retains(guess domain.Word) bool {
	if c.vocabulary == nil {
		return true
	}
	_, ok := c.vocabulary[guess]
	return ok
}

func (c *FeedbackCache) acceptsWriteBack() bool {
	if !c.cfg.MemoizeFallback {
		return false
	}
	if c.cfg.MaxMemoizedGuesses <= 0 {
		return true
	}
	return c.memoizing.Add(1) <= int64(c.cfg.MaxMemoizedGuesses)
}

// load reads guess's table from the store. It returns an empty table when
// the store has none or fails, and publish=false when the caller's context
// ended, so a canceled request cannot pin an empty table for the process
// lifetime.
func (c *FeedbackCache) load(ctx context.Context, guess domain.Word) (domain.Table, bool) {
	if c.store == nil {
		tableLoads.WithLabelValues("absent").Inc()
		return make(domain.Table), true
	}

	table, ok, err := c.store.Load(ctx, guess)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return make(domain.Table), false
	case err != nil:
		tableLoads.WithLabelValues("error").Inc()
		c.logger.Warn("failed to load feedback table, computing feedback instead",
			"guess", guess,
			"error", err)
		return make(domain.Table), true
	case !ok:
		tableLoads.WithLabelValues("absent").Inc()
		return make(domain.Table), true
	}

	c.loads.Add(1)
	tableLoads.WithLabelValues("present").Inc()
	c.logger.Debug("loaded feedback table", "guess", guess, "entries", len(table))
	if table == nil {
		table = make(domain.Table)
	}
	return table, true
}
