package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

func dateRange(t *testing.T, start, end string) teetime.DateRange {
	t.Helper()
	s, err := teetime.ParseDate(start)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", start, err)
	}
	e, err := teetime.ParseDate(end)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", end, err)
	}
	return teetime.DateRange{Start: s, End: e}
}

// stubAdapter returns canned results and counts calls.
type stubAdapter struct {
	name  string
	slots []teetime.RawSlot
	errs  []error // consumed one per call, then nil
	calls atomic.Int32
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) FetchRaw(_ context.Context, _ teetime.Course, _ teetime.DateRange) ([]teetime.RawSlot, error) {
	n := int(s.calls.Add(1)) - 1
	if n < len(s.errs) && s.errs[n] != nil {
		return nil, s.errs[n]
	}
	return s.slots, nil
}

func (s *stubAdapter) BookingURL(course teetime.Course, _ string) string { return course.URL }

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func fmtAny(v any) string {
	return fmt.Sprintf("%#v", v)
}
