package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recover turns a handler panic into a logged 500. http.ErrAbortHandler is
// re-raised so the server aborts the connection as usual.
func Recover(logger *slog.Logger, includeStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				attrs := []any{
					"panic", rvr,
					"uri", r.URL.RequestURI(),
					"addr", r.RemoteAddr,
				}
				if includeStack {
					attrs = append(attrs, "stack", string(debug.Stack()))
				}
				logger.Error("panic recovered", attrs...)

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
