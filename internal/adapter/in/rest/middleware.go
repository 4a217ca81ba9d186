package rest

import (
	"log/slog"
	"net/http"

	"myblog/pkg/logger"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestLogger assigns every request an ID and stores a logger carrying it
// in the request context, so downstream code picks it up via
// logger.FromContext.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			reqLog := log.With("request_id", requestID)
			reqLog.Debug("request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			ctx := logger.WithLogger(r.Context(), reqLog)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
