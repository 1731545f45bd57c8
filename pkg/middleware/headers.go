package middleware

import (
	"net/http"
	"strings"
)

// SecurityHeaders is the default header set for HTML responses.
var SecurityHeaders = []string{
	"X-Content-Type-Options: nosniff",
	"X-Frame-Options: DENY",
	"Referrer-Policy: same-origin",
}

// Headers sets the given "Key: Value" headers on every response. Malformed
// entries and values containing CR or LF are skipped.
func Headers(headers ...string) func(http.Handler) http.Handler {
	parsed := make([][2]string, 0, len(headers))
	for _, h := range headers {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || strings.ContainsAny(value, "\r\n") {
			continue
		}
		parsed = append(parsed, [2]string{key, value})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, kv := range parsed {
				w.Header().Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
