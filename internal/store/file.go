package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

const (
	tableExt     = ".json"
	gzipTableExt = ".json.gz"
)

// FileStore reads one table per guess from a directory. A guess's table lives
// in "<guess lowercase>.json" or, compressed, "<guess lowercase>.json.gz".
type FileStore struct {
	dir      string
	compress bool
	logger   *slog.Logger
}

// FileStoreOption customizes a FileStore.
type FileStoreOption func(*FileStore)

// WithCompression makes Put write gzip-compressed tables.
func WithCompression() FileStoreOption {
	return func(s *FileStore) {
		s.compress = true
	}
}

// NewFileStore creates a store rooted at dir. A missing directory is not an
// error: every guess is then reported absent.
func NewFileStore(dir string, logger *slog.Logger, opts ...FileStoreOption) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &FileStore{
		dir:    dir,
		logger: logger.With("component", "file_store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.logger.Warn("cache directory not found, all feedback will be calculated dynamically",
			"dir", dir)
	}
	return s
}

// Dir returns the directory the store reads from.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, guess domain.Word) (domain.Table, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	base := filepath.Join(s.dir, strings.ToLower(guess.String()))

	data, err := readGzip(base + gzipTableExt)
	if errors.Is(err, os.ErrNotExist) {
		data, err = os.ReadFile(base + tableExt)
	}
	if errors.Is(err, os.ErrNotExist) {
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

// Put implements Writer. The directory is created if needed. The table is
// written to a temporary file and renamed into place, so concurrent readers
// never see a partial table.
func (s *FileStore) Put(ctx context.Context, guess domain.Word, table domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create cache directory %s: %w", s.dir, err)
	}

	data, err := encodeTable(table)
	if err != nil {
		return err
	}

	name := strings.ToLower(guess.String()) + tableExt
	if s.compress {
		name = strings.ToLower(guess.String()) + gzipTableExt
	}

	f, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create table file for %s: %w", guess, err)
	}
	tmp := f.Name()
	if err := writeTable(f, data, s.compress); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write table for %s: %w", guess, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close table file for %s: %w", guess, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("install table for %s: %w", guess, err)
	}
	return nil
}

func writeTable(w io.Writer, data []byte, compress bool) error {
	if !compress {
		_, err := w.Write(data)
		return err
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return data, nil
}
