package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/erppro/identity/internal/api/response"
)

// Recovery creates panic recovery middleware.
// Returns an enveloped 500 response on panic.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					response.Failure(w, http.StatusInternalServerError, "unexpected error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
