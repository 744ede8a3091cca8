package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	r.RecordScan(OutcomeOK)
	r.RecordScan(OutcomeOK)
	r.RecordScan(OutcomeInvalid)
	r.RecordCourseResult("kenna", OutcomeOK, 3)
	r.RecordCourseResult("kenna", OutcomeOK, 2)
	r.RecordCourseResult("", OutcomeUnsupported, 0)
	r.RecordNotification(OutcomeError)

	if got := testutil.ToFloat64(r.scans.WithLabelValues(OutcomeOK)); got != 2 {
		t.Errorf("scans{ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.scans.WithLabelValues(OutcomeInvalid)); got != 1 {
		t.Errorf("scans{invalid} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.slots.WithLabelValues("kenna")); got != 5 {
		t.Errorf("tee_times{kenna} = %v, want 5", got)
	}
	if got := testutil.ToFloat64(r.courseResults.WithLabelValues("none", OutcomeUnsupported)); got != 1 {
		t.Errorf("course_results{none,unsupported} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.notifications.WithLabelValues(OutcomeError)); got != 1 {
		t.Errorf("notifications{error} = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.RecordUpstream("foreup", OutcomeOK, 250*time.Millisecond)
	r.RecordHTTPRequest("POST", "/scan", 200, 40*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"teetime_scanner_upstream_fetch_seconds_count{adapter=\"foreup\",outcome=\"ok\"} 1",
		"teetime_scanner_http_requests_total{method=\"POST\",route=\"/scan\",status=\"200\"} 1",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder

	r.RecordScan(OutcomeOK)
	r.RecordCourseResult("kenna", OutcomeOK, 1)
	r.RecordUpstream("kenna", OutcomeOK, time.Second)
	r.RecordNotification(OutcomeOK)
	r.RecordHTTPRequest("GET", "/healthz", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil recorder handler status = %d, want 404", rec.Code)
	}
}
