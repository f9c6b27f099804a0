package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/logger"
)

// NewRequestLogger logs every request with timing, status and, when the
// request carries a valid token, the caller's user id.
func NewRequestLogger(tokens ClaimsExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()[:8]
			}

			reqLogger := logger.WithRequestID(requestID).With().
				Str("ip", getClientIP(r)).
				Str("user_agent", r.UserAgent()).
				Logger()
			r = r.WithContext(logger.NewContext(r.Context(), &reqLogger))
			w.Header().Set("X-Request-ID", requestID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			ctx := r.Context()
			if claims, err := tokens.ExtractClaims(r); err == nil {
				userLogger := logger.WithUserID(reqLogger, claims.UserID)
				ctx = logger.NewContext(ctx, &userLogger)
			}
			logger.HTTPRequest(ctx, r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}

// responseWriter captures the status code for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
