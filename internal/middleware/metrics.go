package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// RequestRecorder receives one observation per finished HTTP request
type RequestRecorder interface {
	RecordRequest(method, path, status string, duration time.Duration)
}

// Metrics returns a middleware that reports request counts and latency. The
// path label is the chi route pattern so IDs do not explode label cardinality.
func Metrics(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			recorder.RecordRequest(r.Method, routePattern(r), strconv.Itoa(wrapped.status), time.Since(start))
		})
	}
}
