package stub

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// statusResponseWriter wraps http.ResponseWriter to capture the status code.
type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// auditMiddleware logs every request and records request metrics.
func auditMiddleware(logger zerolog.Logger, m *metrics, next http.Handler) http.Handler {
	logger = logger.With().Str("component", "audit").Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(start)
		m.requests.WithLabelValues(r.URL.Path, strconv.Itoa(wrapped.status)).Inc()
		m.duration.WithLabelValues(r.URL.Path).Observe(elapsed.Seconds())

		event := logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", wrapped.status).
			Dur("duration", elapsed)
		if ua := r.Header.Get("User-Agent"); ua != "" {
			event.Str("user_agent", ua)
		}
		if cl := r.ContentLength; cl > 0 {
			event.Int64("content_length", cl)
		}
		event.Msg("Request")
	})
}

// corsMiddleware allows any origin so a browser front end can use the stub.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware rejects requests beyond a global token bucket with 429.
// A nil limiter disables it.
func rateLimitMiddleware(limiter *rate.Limiter, m *metrics, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			m.limited.Inc()
			writeJSON(w, http.StatusTooManyRequests, errorBody{Detail: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
