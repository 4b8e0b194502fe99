package handlers

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// statusRecorder remembers what the wrapped handler sent.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.written += n
	return n, err
}

func LoggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	logEntry := logger.WithField("component", "http_middleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				logEntry.WithFields(logrus.Fields{
					"request_id": requestID,
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     rec.status,
					"duration":   time.Since(start),
					"client_ip":  clientIP(r),
					"bytes":      rec.written,
					"user_agent": r.UserAgent(),
				}).Info("Request processed")
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

// RecoveryMiddleware turns a panicking handler into a 500 response.
func RecoveryMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(logger.WithField("component", "recovery")),
		gorillahandlers.PrintRecoveryStack(true),
	)
}

// clientIP prefers proxy headers and falls back to the peer address.
func clientIP(r *http.Request) string {
	for _, header := range []string{"X-Forwarded-For", "X-Real-IP"} {
		if v := r.Header.Get(header); v != "" {
			first, _, _ := strings.Cut(v, ",")
			return strings.TrimSpace(first)
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
