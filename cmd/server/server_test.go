package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordle-solver-api/internal/config"
	"github.com/phrazzld/wordle-solver-api/internal/solver"
)

type fakeShutdowner struct {
	err    error
	called bool
}

func (f *fakeShutdowner) Shutdown(ctx context.Context) error {
	f.called = true
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("shutdown context has no deadline")
	}
	return f.err
}

type fakeCloser struct {
	closed int
}

func (c *fakeCloser) Close() error {
	c.closed++
	return nil
}

func TestShutdown_ReleasesResources(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr string
	}{
		{name: "clean drain"},
		{name: "drain fails", err: context.DeadlineExceeded, wantErr: "server shutdown failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			closer := &fakeCloser{}
			app := &application{
				config: &config.Config{Server: config.ServerConfig{ShutdownTimeout: 1}},
				logger: discardLogger(),
				closer: closer,
				cache:  solver.NewFeedbackCache(nil, solver.DefaultCacheConfig(), discardLogger()),
			}
			srv := &fakeShutdowner{err: tc.err}

			err := app.shutdown(srv)

			assert.True(t, srv.called)
			assert.Equal(t, 1, closer.closed)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
