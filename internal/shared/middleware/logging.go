package middleware

import (
	"log"
	"net/http"
	"time"
)

// responseWriter captures the status code written by a handler. Handlers
// that write the body without an explicit WriteHeader are recorded as 200.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (rw *responseWriter) Status() int {
	return rw.status
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}

	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

// Logging logs one line per completed request. The query string is
// deliberately omitted: the voice endpoints carry raw bank messages in
// query parameters.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		log.Printf("%s %s -> %d (%s)",
			r.Method, r.URL.Path, wrapped.Status(), time.Since(start).Round(time.Microsecond))
	})
}
