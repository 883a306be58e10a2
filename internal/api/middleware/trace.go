package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordle-solver-api/internal/api/shared"
	"github.com/phrazzld/wordle-solver-api/internal/platform/logger"
)

// Trace returns middleware that gives every request a trace ID and a
// request-scoped logger carrying it. The ID is echoed in the X-Trace-ID
// response header so clients can quote it when reporting problems.
//
// It should be applied early in the middleware chain so that all later
// handlers see the trace ID.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
