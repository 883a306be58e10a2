package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordle-solver-api/internal/api"
	"github.com/phrazzld/wordle-solver-api/internal/config"
	"github.com/phrazzld/wordle-solver-api/internal/domain"
	"github.com/phrazzld/wordle-solver-api/internal/solver"
	"github.com/phrazzld/wordle-solver-api/internal/store"
	"github.com/phrazzld/wordle-solver-api/internal/wordlist"
)

var testWords = []string{"CRANE", "CRAVE", "GRACE", "BRAVE", "SLATE", "STALE", "TRACE"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConfig writes a word list, a starter cache and one precomputed
// table into a temp dir and returns a config pointing at them.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	wordlistPath := filepath.Join(dir, "wordlist.txt")
	require.NoError(t, os.WriteFile(wordlistPath, []byte(strings.Join(testWords, "\n")+"\n"), 0o644))

	starterPath := filepath.Join(dir, "starter_cache.json")
	require.NoError(t, wordlist.WriteStarter(starterPath, []domain.Suggestion{
		{Guess: "SLATE", Entropy: 1.9},
		{Guess: "CRANE", Entropy: 1.7},
	}))

	cacheDir := filepath.Join(dir, "cache")
	words := domain.Words(testWords...)
	slate := domain.MustParseWord("SLATE")
	table := make(domain.Table, len(words))
	for _, secret := range words {
		table[secret] = solver.Score(slate, secret)
	}
	require.NoError(t, store.NewFileStore(cacheDir, discardLogger()).Put(context.Background(), slate, table))

	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "info",
			CORSOrigins:     config.DefaultCORSOrigins,
			ShutdownTimeout: 1,
		},
		Solver: config.SolverConfig{
			WordlistPath:     wordlistPath,
			StarterCachePath: starterPath,
			SearchThreshold:  30,
			TopN:             20,
			Workers:          2,
			MemoizeFallback:  true,
		},
		Cache: config.CacheConfig{
			Dir:              cacheDir,
			Backend:          config.BackendFiles,
			DownloadAttempts: 1,
		},
	}
}

// writeArchive zips every file in dir into path.
func writeArchive(t *testing.T, path, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		w, err := zw.Create(e.Name())
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	app, err := newApplication(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestNewApplication(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		app, err := newApplication(context.Background(), nil, discardLogger())
		assert.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("loads inputs", func(t *testing.T) {
		app, err := newApplication(context.Background(), newTestConfig(t), discardLogger())
		require.NoError(t, err)

		st := app.service.Status()
		assert.Equal(t, len(testWords), st.Words)
		assert.Equal(t, 2, st.Starter)
		assert.Nil(t, app.closer)
	})

	t.Run("off-list guesses do not grow the cache", func(t *testing.T) {
		app, err := newApplication(context.Background(), newTestConfig(t), discardLogger())
		require.NoError(t, err)
		before := app.cache.Stats().Tables

		for _, guess := range []string{"QUIZZ", "JAZZY", "FUZZY"} {
			fb, err := app.service.Feedback(context.Background(),
				domain.MustParseWord(guess), domain.MustParseWord("CRANE"))
			require.NoError(t, err)
			assert.Equal(t, solver.Score(domain.MustParseWord(guess), domain.MustParseWord("CRANE")), fb)
		}
		assert.Equal(t, before, app.cache.Stats().Tables)
	})

	t.Run("missing inputs degrade", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Solver.WordlistPath = filepath.Join(t.TempDir(), "missing.txt")
		cfg.Solver.StarterCachePath = filepath.Join(t.TempDir(), "missing.json")
		cfg.Cache.Dir = filepath.Join(t.TempDir(), "missing")

		app, err := newApplication(context.Background(), cfg, discardLogger())
		require.NoError(t, err)

		st := app.service.Status()
		assert.Zero(t, st.Words)
		assert.Zero(t, st.Starter)

		result, err := app.service.Suggest(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, result.Suggestions)
	})

	t.Run("provisions tables from archive", func(t *testing.T) {
		cfg := newTestConfig(t)
		archive := filepath.Join(t.TempDir(), "cache.zip")
		writeArchive(t, archive, cfg.Cache.Dir)
		cfg.Cache.Dir = filepath.Join(t.TempDir(), "provisioned")
		cfg.Cache.ZipURL = "file://" + archive

		app, err := newApplication(context.Background(), cfg, discardLogger())
		require.NoError(t, err)

		table, ok, err := app.store.Load(context.Background(), domain.MustParseWord("SLATE"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Len(t, table, len(testWords))
	})

	t.Run("missing archive is not fatal", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Cache.Dir = filepath.Join(t.TempDir(), "provisioned")
		cfg.Cache.ZipURL = filepath.Join(t.TempDir(), "missing.zip")

		app, err := newApplication(context.Background(), cfg, discardLogger())
		require.NoError(t, err)
		_, ok, err := app.store.Load(context.Background(), domain.MustParseWord("SLATE"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unopenable badger store falls back", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Cache.Backend = config.BackendBadger
		cfg.Cache.BadgerPath = filepath.Join(t.TempDir(), "absent")

		app, err := newApplication(context.Background(), cfg, discardLogger())
		require.NoError(t, err)
		assert.Nil(t, app.closer)

		fb, err := app.service.Feedback(context.Background(),
			domain.MustParseWord("SLATE"), domain.MustParseWord("CRANE"))
		require.NoError(t, err)
		assert.Equal(t, "bbgbg", fb.String())
	})
}

func TestRouter_Suggestions(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	t.Run("opening move uses starter list", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/suggestions", `{"history": []}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body api.SuggestionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Starter)
		assert.Equal(t, domain.Words("SLATE", "CRANE"), body.Suggestions)
		assert.Equal(t, len(testWords), body.Remaining)
	})

	t.Run("history narrows candidates", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/suggestions",
			`{"history": [{"guess": "slate", "feedback": "bbgbg"}, {"guess": "", "feedback": ""}]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body api.SuggestionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Starter)
		assert.Equal(t, 4, body.Remaining)
		assert.ElementsMatch(t, domain.Words("CRANE", "CRAVE", "GRACE", "BRAVE"), body.Suggestions)
	})

	t.Run("invalid feedback", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/suggestions",
			`{"history": [{"guess": "slate", "feedback": "bbxbg"}]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/suggestions", `{"history":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_Feedback(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	resp := postJSON(t, srv.URL+"/api/feedback", `{"guess": "slate", "secret": "crane"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.FeedbackResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "bbgbg", body.Feedback.String())
}

func TestRouter_StatusAndHealth(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	// Touch the precomputed SLATE table so the status reflects a load.
	postJSON(t, srv.URL+"/api/feedback", `{"guess": "slate", "secret": "crane"}`)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	var status api.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, api.StatusMessage, status.Status)
	assert.Equal(t, len(testWords), status.Words)
	assert.Equal(t, 2, status.StarterWords)
	assert.Equal(t, uint64(1), status.Cache.Hits)
	assert.Equal(t, uint64(1), status.Cache.Loads)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = health.Body.Close() }()
	data, err := io.ReadAll(health.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, health.StatusCode)
	assert.Equal(t, "OK", string(data))

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = metrics.Body.Close() }()
	data, err = io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wordle_feedback_cache_lookups_total")
}

func TestRouter_CORS(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t))

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"configured origin", "http://localhost:5173", true},
		{"loopback origin", "http://127.0.0.1:5174", true},
		{"unknown origin", "https://example.com", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/suggestions", nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			if tc.allowed {
				assert.Equal(t, tc.origin, resp.Header.Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
