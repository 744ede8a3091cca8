package server

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/teetime-scanner/internal/logger"
)

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

type requestIDKey struct{}

type loggerKey struct{}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

func (s *Server) requestLogger(r *http.Request) *logger.Logger {
	if l, ok := r.Context().Value(loggerKey{}).(*logger.Logger); ok {
		return l
	}
	return s.log
}

// withRequestLogging assigns a request ID, logs completion and records HTTP metrics.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := sanitizeRequestID(r.Header.Get("X-Request-ID"))
		w.Header().Set("X-Request-ID", reqID)

		log := s.log.With(logger.Fields{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		ctx = context.WithValue(ctx, loggerKey{}, log)
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r.WithContext(ctx))

		duration := time.Since(start)
		s.metrics.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), ww.status, duration)
		log.Info("request complete", logger.Fields{
			"status":      ww.status,
			"duration_ms": duration.Milliseconds(),
		})
	})
}

// withRecovery turns a handler panic into a 500.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.requestLogger(r).Error("handler panic", nil, fmt.Errorf("%v", rec))
				s.writeError(w, r, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func sanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return uuid.NewString()
}

// routeLabel keeps metric cardinality bounded.
func routeLabel(path string) string {
	switch {
	case path == "/scan", path == "/courses", path == "/healthz", path == "/metrics":
		return path
	case strings.HasPrefix(path, "/courses/"):
		return "/courses/{name}"
	default:
		return "other"
	}
}
