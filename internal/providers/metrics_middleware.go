package providers

import (
	"net/http"
	"time"
)

// UnmatchedEndpoint labels requests no route pattern claimed, so stray
// paths do not grow the label set.
const UnmatchedEndpoint = "unmatched"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware records request count and latency per route. The label is
// the ServeMux pattern that handled the request ("POST /visitor"), which the
// mux writes back onto the request before calling the handler.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = UnmatchedEndpoint
		}
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
