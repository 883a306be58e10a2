// Package bundle provisions the precomputed feedback tables from a zip
// archive, fetched over HTTP or read from the local filesystem.
package bundle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/sethvargo/go-retry"
)

// ErrUnsafePath is returned when an archive entry would be written outside
// the target directory.
var ErrUnsafePath = errors.New("archive entry escapes target directory")

// ErrEntryTooLarge is returned when an archive entry inflates past
// maxEntrySize.
var ErrEntryTooLarge = errors.New("archive entry too large")

// maxArchiveSize caps how much of a download is buffered in memory.
const maxArchiveSize = 1 << 30

// maxEntrySize caps the inflated size of a single archive entry. A full
// feedback table is well under a megabyte.
var maxEntrySize int64 = 64 << 20

// Result describes what Provision did.
type Result struct {
	// Skipped is true when dir already held files and nothing was fetched.
	Skipped bool
	// Files is the number of regular files extracted.
	Files int
}

// Provisioner fetches and unpacks cache archives.
type Provisioner struct {
	client   *http.Client
	attempts uint64
	backoff  time.Duration
	logger   *slog.Logger
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithHTTPClient overrides the client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provisioner) { p.client = c }
}

// WithAttempts sets how many times a download is tried before giving up.
func WithAttempts(n int) Option {
	return func(p *Provisioner) {
		if n > 0 {
			p.attempts = uint64(n)
		}
	}
}

// WithBackoff sets the initial delay between download attempts. It doubles
// after every failure.
func WithBackoff(d time.Duration) Option {
	return func(p *Provisioner) {
		if d > 0 {
			p.backoff = d
		}
	}
}

// NewProvisioner creates a Provisioner. By default downloads are tried
// three times starting with a one second backoff.
func NewProvisioner(logger *slog.Logger, opts ...Option) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provisioner{
		client:   &http.Client{Timeout: 5 * time.Minute},
		attempts: 3,
		backoff:  time.Second,
		logger:   logger.With("component", "bundle"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provision makes sure dir holds the contents of the archive at source.
// Nothing happens when dir already exists and is not empty. source is an
// http(s) URL, a file:// URL or a plain path.
func (p *Provisioner) Provision(ctx context.Context, source, dir string) (Result, error) {
	populated, err := hasEntries(dir)
	if err != nil {
		return Result{}, err
	}
	if populated {
		p.logger.Info("cache directory already populated, skipping download", "dir", dir)
		return Result{Skipped: true}, nil
	}

	source = strings.TrimPrefix(source, "file://")
	p.logger.Info("loading feedback cache archive", "source", source, "dir", dir)

	var data []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = p.download(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return Result{}, fmt.Errorf("fetch cache archive %s: %w", source, err)
	}

	n, err := Extract(data, dir)
	if err != nil {
		return Result{}, fmt.Errorf("extract cache archive %s: %w", source, err)
	}

	p.logger.Info("feedback cache loaded", "dir", dir, "files", n)
	return Result{Files: n}, nil
}

func (p *Provisioner) download(ctx context.Context, url string) ([]byte, error) {
	b := retry.WithMaxRetries(p.attempts-1, retry.NewExponential(p.backoff))

	var data []byte
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		body, err := p.get(ctx, url)
		if err != nil {
			p.logger.Warn("cache archive download failed", "url", url, "error", err)
			return err
		}
		data = body
		return nil
	})
	return data, err
}

// get performs one download attempt. Network errors and 5xx responses are
// retryable; other statuses are not.
func (p *Provisioner) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, retry.RetryableError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, retry.RetryableError(err)
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	if len(body) > maxArchiveSize {
		return nil, fmt.Errorf("archive larger than %d bytes", maxArchiveSize)
	}
	return body, nil
}

// Extract unpacks the zip archive in data into dir and returns the number of
// regular files written. dir must be missing or empty. The archive is first
// unpacked into a temporary sibling that replaces dir only when every entry
// was written, so a failed extraction leaves nothing behind. Entries that
// would land outside dir, or that inflate past maxEntrySize, are rejected.
func Extract(data []byte, dir string) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return 0, err
	}
	parent := filepath.Dir(root)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return 0, fmt.Errorf("create cache parent dir: %w", err)
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(root)+".*")
	if err != nil {
		return 0, fmt.Errorf("create staging dir: %w", err)
	}
	installed := false
	defer func() {
		if !installed {
			_ = os.RemoveAll(staging)
		}
	}()

	files, err := extractAll(zr, staging)
	if err != nil {
		return 0, err
	}

	if err := os.Chmod(staging, 0o755); err != nil {
		return 0, err
	}
	// Only an empty directory can be removed here; a populated one is an error.
	if err := os.Remove(root); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("replace cache dir %s: %w", root, err)
	}
	if err := os.Rename(staging, root); err != nil {
		return 0, fmt.Errorf("install cache dir %s: %w", root, err)
	}
	installed = true
	return files, nil
}

func extractAll(zr *zip.Reader, root string) (int, error) {
	files := 0
	for _, f := range zr.File {
		target := filepath.Join(root, f.Name)
		rel, err := filepath.Rel(root, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return files, fmt.Errorf("%w: %q", ErrUnsafePath, f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			continue
		}

		if err := writeEntry(f, target); err != nil {
			return files, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		files++
	}
	return files, nil
}

func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	n, err := io.CopyN(out, rc, maxEntrySize+1)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = out.Close()
		return err
	}
	if n > maxEntrySize {
		_ = out.Close()
		return fmt.Errorf("%w: over %d bytes", ErrEntryTooLarge, maxEntrySize)
	}
	return out.Close()
}

func hasEntries(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect cache dir %s: %w", dir, err)
	}
	return len(entries) > 0, nil
}
