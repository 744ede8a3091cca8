package scan

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/teetime-scanner/internal/adapter"
	"github.com/pfrederiksen/teetime-scanner/internal/logger"
	"github.com/pfrederiksen/teetime-scanner/internal/metrics"
	"github.com/pfrederiksen/teetime-scanner/internal/normalize"
	"github.com/pfrederiksen/teetime-scanner/internal/notifier"
	"github.com/pfrederiksen/teetime-scanner/internal/storage"
	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const (
	DefaultConcurrency     = 4
	DefaultUpstreamTimeout = 15 * time.Second

	unsupportedMessage = "unsupported course"
)

// Resolver maps a course to the adapter that serves it.
type Resolver interface {
	Resolve(course teetime.Course) (adapter.Adapter, error)
}

// CourseSource looks up registered courses by name.
type CourseSource interface {
	Get(ctx context.Context, name string) (teetime.Course, error)
}

// Options configures a Service. Zero values pick defaults.
type Options struct {
	Courses         CourseSource      // nil treats every identifier as unregistered
	Notifier        notifier.Notifier // nil disables notification
	Metrics         *metrics.Recorder
	Logger          *logger.Logger
	Concurrency     int
	UpstreamTimeout time.Duration // bound on one upstream call
	RetryAttempts   int           // attempts per call, for sizing the course deadline
	RetryDelay      time.Duration
	CourseTimeout   time.Duration // bound on a whole course; 0 scales with the day count
	MaxScanDays     int
}

// Service runs scans.
type Service struct {
	resolver        Resolver
	courses         CourseSource
	notifier        notifier.Notifier
	metrics         *metrics.Recorder
	log             *logger.Logger
	concurrency     int
	upstreamTimeout time.Duration
	retryAttempts   int
	retryDelay      time.Duration
	courseTimeout   time.Duration
	maxScanDays     int
}

// New creates a Service.
func New(resolver Resolver, opts Options) *Service {
	s := &Service{
		resolver:        resolver,
		courses:         opts.Courses,
		notifier:        opts.Notifier,
		metrics:         opts.Metrics,
		log:             opts.Logger,
		concurrency:     opts.Concurrency,
		upstreamTimeout: opts.UpstreamTimeout,
		retryAttempts:   opts.RetryAttempts,
		retryDelay:      opts.RetryDelay,
		courseTimeout:   opts.CourseTimeout,
		maxScanDays:     opts.MaxScanDays,
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultConcurrency
	}
	if s.upstreamTimeout <= 0 {
		s.upstreamTimeout = DefaultUpstreamTimeout
	}
	if s.retryAttempts <= 0 {
		s.retryAttempts = 1
	}
	if s.maxScanDays <= 0 {
		s.maxScanDays = teetime.DefaultMaxScanDays
	}
	return s
}

// courseDeadline bounds one course's fetch. Adapters fetch day by day, so
// unless a fixed CourseTimeout is set the budget is one upstream call
// (with its retries) per day.
func (s *Service) courseDeadline(days int) time.Duration {
	if s.courseTimeout > 0 {
		return s.courseTimeout
	}
	if days < 1 {
		days = 1
	}
	perDay := time.Duration(s.retryAttempts)*s.upstreamTimeout + time.Duration(s.retryAttempts-1)*s.retryDelay
	return time.Duration(days) * perDay
}

// Scan validates payload and scans every requested course. A *teetime.ValidationError
// is returned before any upstream call; ctx.Err() is returned if ctx ends first.
func (s *Service) Scan(ctx context.Context, payload teetime.ScanPayload) ([]teetime.CourseResult, error) {
	req, err := payload.Validate(s.maxScanDays)
	if err != nil {
		s.metrics.RecordScan(metrics.OutcomeInvalid)
		return nil, err
	}

	log := s.log.With(logger.Fields{"scan_id": uuid.NewString()})
	start := time.Now()
	log.Info("scan started", logger.Fields{
		"courses": len(req.Courses),
		"dates":   req.Dates.Key(),
		"window":  teetime.FormatClock(req.Window.Start) + "-" + teetime.FormatClock(req.Window.End),
	})

	results := make([]teetime.CourseResult, len(req.Courses))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range req.Courses {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = s.scanCourse(ctx, log, id, req)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		s.metrics.RecordScan(metrics.OutcomeCanceled)
		log.Warn("scan abandoned", logger.Fields{"elapsed_ms": time.Since(start).Milliseconds()})
		return nil, err
	}

	found, failed := 0, 0
	for _, r := range results {
		found += len(r.Times)
		if r.Failed() {
			failed++
		}
	}
	log.Info("scan finished", logger.Fields{
		"tee_times":  found,
		"failed":     failed,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	s.metrics.RecordScan(metrics.OutcomeOK)

	if req.NotifyURL != "" && found > 0 {
		s.notify(ctx, log, results, req)
	}
	return results, nil
}

func (s *Service) scanCourse(ctx context.Context, log *logger.Logger, id string, req teetime.ScanRequest) teetime.CourseResult {
	course := s.lookup(ctx, log, id)
	log = log.With(logger.Fields{"course": id})

	a, err := s.resolver.Resolve(course)
	if err != nil {
		log.Warn("no adapter for course", logger.Fields{"url": course.URL})
		s.metrics.RecordCourseResult("", metrics.OutcomeUnsupported, 0)
		return teetime.NewFailedResult(id, unsupportedMessage)
	}
	log = log.With(logger.Fields{"adapter": a.Name()})

	fetchCtx, cancel := context.WithTimeout(ctx, s.courseDeadline(len(req.Dates.Days())))
	raws, err := a.FetchRaw(fetchCtx, course, req.Dates)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return teetime.NewFailedResult(id, ctx.Err().Error())
		}
		fields := logger.Fields{}
		if perr, ok := adapter.AsParseError(err); ok {
			fields["payload_prefix"] = perr.Payload
		}
		if adapter.IsUnsupported(err) {
			log.Warn("course not supported by adapter", logger.Fields{"reason": err.Error()})
			s.metrics.RecordCourseResult(a.Name(), metrics.OutcomeUnsupported, 0)
			return teetime.NewFailedResult(id, unsupportedMessage)
		}
		log.Error("course fetch failed", fields, err)
		s.metrics.RecordCourseResult(a.Name(), adapter.Outcome(err), 0)
		return teetime.NewFailedResult(id, err.Error())
	}

	times := FilterWindow(normalize.All(raws, course, a.BookingURL), req.Window)
	log.Debug("course scanned", logger.Fields{"raw_slots": len(raws), "tee_times": len(times)})
	s.metrics.RecordCourseResult(a.Name(), metrics.OutcomeOK, len(times))
	return teetime.CourseResult{Course: id, Times: times}
}

// lookup returns the registered course, or a course built from the identifier itself.
func (s *Service) lookup(ctx context.Context, log *logger.Logger, id string) teetime.Course {
	if s.courses != nil {
		course, err := s.courses.Get(ctx, id)
		if err == nil {
			return course
		}
		if !errors.Is(err, storage.ErrCourseNotFound) {
			log.Warn("course lookup failed, using identifier", logger.Fields{"course": id, "error": err.Error()})
		}
	}
	if looksLikeURL(id) {
		return teetime.Course{Name: id, URL: id}
	}
	return teetime.Course{Name: id}
}

func (s *Service) notify(ctx context.Context, log *logger.Logger, results []teetime.CourseResult, req teetime.ScanRequest) {
	if s.notifier == nil {
		log.Warn("webhook requested but no notifier configured", nil)
		return
	}
	err := s.notifier.Notify(ctx, req.NotifyURL, notifier.FormatSummary(results, req))
	if err != nil {
		log.Error("webhook notification failed", nil, err)
		s.metrics.RecordNotification(metrics.OutcomeError)
		return
	}
	log.Info("webhook notified", nil)
	s.metrics.RecordNotification(metrics.OutcomeOK)
}

// FilterWindow keeps times whose clock falls in window, preserving order.
// Times that do not parse as a clock are dropped.
func FilterWindow(times []teetime.TeeTime, window teetime.TimeWindow) []teetime.TeeTime {
	out := make([]teetime.TeeTime, 0, len(times))
	for _, tt := range times {
		m, ok := teetime.ParseClock(tt.Time)
		if ok && window.Contains(m) {
			out = append(out, tt)
		}
	}
	return out
}

func looksLikeURL(id string) bool {
	u, err := url.Parse(id)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
