package api

import (
	"log/slog"
	"net/http"
	"time"
)

// logRequests logs every request with method, path and duration.
func (h *MovieInfoHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.InfoContext(r.Context(), "Request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}
