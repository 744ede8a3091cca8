// Package server exposes the scanner over HTTP.
//
// Routes:
//
//	POST   /scan            run a scan, returns one result per course
//	GET    /courses         list registered courses
//	POST   /courses         register a course
//	DELETE /courses/{name}  remove a course
//	GET    /healthz         liveness
//	GET    /metrics         Prometheus metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/logger"
	"github.com/pfrederiksen/teetime-scanner/internal/metrics"
	"github.com/pfrederiksen/teetime-scanner/internal/storage"
	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const (
	readTimeout = 10 * time.Second
	idleTimeout = 60 * time.Second

	// writeTimeout must outlast a multi-course, multi-day scan.
	writeTimeout = 5 * time.Minute

	maxBodyBytes = 1 << 20
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// Scanner runs a scan request.
type Scanner interface {
	Scan(ctx context.Context, payload teetime.ScanPayload) ([]teetime.CourseResult, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	scans   Scanner
	courses storage.CourseStore
	metrics *metrics.Recorder
	log     *logger.Logger
}

// New creates a Server. rec and log may be nil.
func New(scans Scanner, courses storage.CourseStore, rec *metrics.Recorder, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{scans: scans, courses: courses, metrics: rec, log: log}
}

// Handler returns the routed handler wrapped in recovery and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.handleScan)
	mux.HandleFunc("GET /courses", s.handleListCourses)
	mux.HandleFunc("POST /courses", s.handleAddCourse)
	mux.HandleFunc("DELETE /courses/{name}", s.handleRemoveCourse)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return s.withRequestLogging(s.withRecovery(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", logger.Fields{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("http server shutting down", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
