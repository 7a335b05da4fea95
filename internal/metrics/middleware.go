package metrics

import (
	"net/http"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// HTTPMiddleware returns middleware that records HTTP metrics. When routes
// are given, any other request path is recorded under the "other" label so
// probing clients cannot grow the label set.
func HTTPMiddleware(reg *Registry, routes ...string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if len(known) > 0 {
				if _, ok := known[path]; !ok {
					path = "other"
				}
			}

			duration := time.Since(start).Seconds()
			reg.RecordRequest(r.Method, path, rw.statusCode, duration)
		})
	}
}
