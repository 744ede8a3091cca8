package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

func TestWebhookNotifier(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{"ok", http.StatusOK, false},
		{"no content", http.StatusNoContent, false},
		{"bad request", http.StatusBadRequest, true},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got webhookPayload
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decoding body: %v", err)
				}
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			err := NewWebhookNotifier(nil).Notify(context.Background(), server.URL+"/hook", "hello")

			if tt.wantErr {
				var nerr *NotifierError
				if !errors.As(err, &nerr) {
					t.Fatalf("Notify() error = %v, want NotifierError", err)
				}
				if nerr.StatusCode != tt.statusCode {
					t.Errorf("StatusCode = %d, want %d", nerr.StatusCode, tt.statusCode)
				}
				if strings.Contains(err.Error(), server.URL) {
					t.Errorf("error %q leaks the webhook url", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Notify() unexpected error: %v", err)
			}
			if got.Text != "hello" {
				t.Errorf("payload text = %q, want hello", got.Text)
			}
		})
	}
}

func TestWebhookNotifier_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewWebhookNotifier(nil).Notify(context.Background(), url, "hello")
	var nerr *NotifierError
	if !errors.As(err, &nerr) || nerr.StatusCode != 0 {
		t.Fatalf("Notify() error = %v, want transport NotifierError", err)
	}
}

func TestWebhookNotifier_ErrorOmitsWebhookPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	hook := server.URL + "/services/T0/B0/SUPERSECRETTOKEN"
	server.Close()

	err := NewWebhookNotifier(nil).Notify(context.Background(), hook, "hello")
	if err == nil {
		t.Fatal("expected error for unreachable webhook")
	}
	if strings.Contains(err.Error(), "SUPERSECRETTOKEN") || strings.Contains(err.Error(), "/services/") {
		t.Errorf("error leaks webhook path: %v", err)
	}
	if !strings.Contains(err.Error(), "webhook delivery failed") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewDryRunNotifier(&buf)

	if err := n.Notify(context.Background(), "https://hooks.slack.com/services/T000/B000/secret", "summary text"); err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "summary text") {
		t.Errorf("output missing summary: %q", out)
	}
	if strings.Contains(out, "secret") {
		t.Errorf("output leaks webhook path: %q", out)
	}
	if !strings.Contains(out, "https://hooks.slack.com/...") {
		t.Errorf("output missing redacted url: %q", out)
	}
}

func TestFormatSummary(t *testing.T) {
	req := teetime.ScanRequest{
		Dates: teetime.DateRange{
			Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		Window: teetime.TimeWindow{Start: 7 * 60, End: 12 * 60},
	}
	results := []teetime.CourseResult{
		{Course: "Neshanic", Times: []teetime.TeeTime{
			{Date: "2025-06-01", Time: "7:10 AM", Price: "$45.00", BookingURL: "https://a.test/book"},
			{Date: "2025-06-02", Time: "9:00 AM", Price: "N/A", BookingURL: "https://a.test/book"},
		}},
		teetime.NewFailedResult("Galloping Hill", "unsupported course"),
		{Course: "Francis Byrne", Times: []teetime.TeeTime{
			{Date: "2025-06-01", Time: "11:50 AM", Price: "39", BookingURL: "https://b.test"},
		}},
	}

	got := FormatSummary(results, req)
	lines := strings.Split(got, "\n")

	want := []string{
		"⛳ 3 tee times at 2 courses (2025-06-01 to 2025-06-02, 7:00 AM to 12:00 PM)",
		"Neshanic | 2025-06-01 | 7:10 AM | $45.00 | https://a.test/book",
		"Neshanic | 2025-06-02 | 9:00 AM | N/A | https://a.test/book",
		"Francis Byrne | 2025-06-01 | 11:50 AM | 39 | https://b.test",
	}
	if len(lines) != len(want) {
		t.Fatalf("FormatSummary() = %d lines, want %d:\n%s", len(lines), len(want), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFormatSummary_Truncates(t *testing.T) {
	times := make([]teetime.TeeTime, MaxSummaryLines+5)
	for i := range times {
		times[i] = teetime.TeeTime{Date: "2025-06-01", Time: "7:00 AM", Price: "N/A"}
	}
	got := FormatSummary([]teetime.CourseResult{{Course: "Big", Times: times}}, teetime.ScanRequest{})

	lines := strings.Split(got, "\n")
	if len(lines) != MaxSummaryLines+2 {
		t.Fatalf("FormatSummary() = %d lines, want %d", len(lines), MaxSummaryLines+2)
	}
	if last := lines[len(lines)-1]; last != "... and 5 more" {
		t.Errorf("last line = %q, want %q", last, "... and 5 more")
	}
}
