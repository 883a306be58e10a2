package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

const badgerKeyPrefix = "fb:"

// BadgerConfig holds configuration for a badger-backed table store.
type BadgerConfig struct {
	// Path is the directory for database files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode. Useful for testing.
	InMemory bool

	// ReadOnly opens an existing database without write access.
	ReadOnly bool

	// Logger receives badger's internal log output. If nil, it is discarded.
	Logger *slog.Logger
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerStore keeps one JSON-encoded table per guess under the key
// "fb:<GUESS>".
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a badger-backed store.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if !cfg.ReadOnly {
			if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
			}
		}
		opts = badger.DefaultOptions(cfg.Path).WithReadOnly(cfg.ReadOnly)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(guess domain.Word) []byte {
	return []byte(badgerKeyPrefix + guess.String())
}

// Load implements Store.
func (s *BadgerStore) Load(ctx context.Context, guess domain.Word) (domain.Table, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(guess))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read table for %s: %w", guess, err)
	}

	table, err := decodeTable(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode table for %s: %w", guess, err)
	}
	return table, true, nil
}

// Put implements Writer.
func (s *BadgerStore) Put(ctx context.Context, guess domain.Word, table domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeTable(table)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(guess), data)
	}); err != nil {
		return fmt.Errorf("write table for %s: %w", guess, err)
	}
	return nil
}

// putRaw stores bytes as-is. Tests use it to simulate corrupt entries.
func (s *BadgerStore) putRaw(guess domain.Word, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(guess), data)
	})
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
