package store

import (
	"context"
	"maps"
	"sync"

	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

// MemoryStore is a map-backed Store. It is used in tests and when tables are
// generated in-process.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[domain.Word]domain.Table
	loads  map[domain.Word]int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[domain.Word]domain.Table),
		loads:  make(map[domain.Word]int),
	}
}

// Load implements Store. The returned table is a copy.
func (s *MemoryStore) Load(ctx context.Context, guess domain.Word) (domain.Table, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads[guess]++
	table, ok := s.tables[guess]
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(table), true, nil
}

// Put implements Writer.
func (s *MemoryStore) Put(ctx context.Context, guess domain.Word, table domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[guess] = maps.Clone(table)
	return nil
}

// Loads returns how many times Load was called for guess.
func (s *MemoryStore) Loads(guess domain.Word) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads[guess]
}
