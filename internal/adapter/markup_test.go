package adapter

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

func TestScrapeSlots_Strategies(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantTimes  []string
		wantPrices []any
	}{
		{
			name: "embedded JSON in inline script",
			html: `<html><head><script src="/app.js"></script><script>
				window.state = {"course": 1, "times": [{"time":"2025-06-01 07:30","green_fee":"39.00"},{"time":"2025-06-01 08:00","green_fee":null}]};
			</script></head><body>
				<div class="time-slot-class"><span class="time">9:00 AM</span></div>
			</body></html>`,
			wantTimes:  []string{"2025-06-01 07:30", "2025-06-01 08:00"},
			wantPrices: []any{"39.00", nil},
		},
		{
			name:       "var times assignment",
			html:       `<script>var times = [{"start_time":"10:20","price":25}];</script>`,
			wantTimes:  []string{"10:20"},
			wantPrices: []any{25.0},
		},
		{
			name: "element selectors",
			html: `<html><body>
				<div class="time-slot-class"><span class="time"> 7:00 AM </span><span class="price">$45.00</span></div>
				<div class="time-slot-class"><span class="time">7:10 AM</span></div>
				<div class="time-slot-class"><span class="price">$10</span></div>
			</body></html>`,
			wantTimes:  []string{"7:00 AM", "7:10 AM"},
			wantPrices: []any{"$45.00", nil},
		},
		{
			name: "aria labels",
			html: `<html><body>
				<button aria-label="Book 6:40 am tee time for $ 32.00">Book</button>
				<button aria-label="Close dialog">x</button>
				<button aria-label="Tee time at 1:15 P.M.">Book</button>
			</body></html>`,
			wantTimes:  []string{"6:40 AM", "1:15 PM"},
			wantPrices: []any{"$32.00", nil},
		},
		{
			name: "malformed embedded JSON falls through to selectors",
			html: `<script>var times = [{"time": oops}];</script>
				<div class="time-slot-class"><span class="time">11:00 AM</span><span class="price">$20</span></div>`,
			wantTimes:  []string{"11:00 AM"},
			wantPrices: []any{"$20"},
		},
		{
			name:      "nothing matches",
			html:      `<html><body><p>No tee times available</p></body></html>`,
			wantTimes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := scrapeSlots(ForeUpName, []byte(tt.html), "2025-06-01", foreupSelectors, nil)
			if err != nil {
				t.Fatalf("scrapeSlots() unexpected error: %v", err)
			}
			if slots == nil {
				t.Fatal("scrapeSlots() returned nil, want empty slice")
			}
			if len(slots) != len(tt.wantTimes) {
				t.Fatalf("scrapeSlots() returned %d slots (%+v), want %d", len(slots), slots, len(tt.wantTimes))
			}
			for i, slot := range slots {
				if slot.Time != tt.wantTimes[i] {
					t.Errorf("slot[%d].Time = %v, want %v", i, slot.Time, tt.wantTimes[i])
				}
				if slot.Price != tt.wantPrices[i] {
					t.Errorf("slot[%d].Price = %v, want %v", i, slot.Price, tt.wantPrices[i])
				}
				if slot.Date != "2025-06-01" {
					t.Errorf("slot[%d].Date = %q, want 2025-06-01", i, slot.Date)
				}
			}
		})
	}
}

func TestBalancedArray(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{`[1,2,3] rest`, `[1,2,3]`, true},
		{`[{"a":"]"},[4]];`, `[{"a":"]"},[4]]`, true},
		{`[{"a":"\"]"}]`, `[{"a":"\"]"}]`, true},
		{`[1,2`, ``, false},
		{`x[1]`, ``, false},
	}
	for _, tt := range tests {
		got, ok := balancedArray(tt.text, 0)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("balancedArray(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestForeUpFetchRaw(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/22528/11078" {
			t.Errorf("path = %s, want /22528/11078", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "06-01-2025" {
			t.Errorf("date = %q, want 06-01-2025", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("User-Agent = %q, want a browser agent", ua)
		}
		w.Write([]byte(`<div class="time-slot-class"><span class="time">7:00 AM</span><span class="price">$45.00</span></div>`))
	})

	f := NewForeUp(nil, nil)
	f.baseURL = server.URL

	course := teetime.Course{Name: "Francis Byrne"}
	slots, err := f.FetchRaw(context.Background(), course, dateRange(t, "2025-06-01", "2025-06-01"))
	if err != nil {
		t.Fatalf("FetchRaw() unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0].Time != "7:00 AM" {
		t.Errorf("FetchRaw() = %+v, want one 7:00 AM slot", slots)
	}
	if got := f.BookingURL(course, "2025-06-01"); got != server.URL+"/22528/11078#/teetimes" {
		t.Errorf("BookingURL() = %q", got)
	}
}

func TestForeUpTarget(t *testing.T) {
	f := NewForeUp(nil, nil)

	got, err := f.target(teetime.Course{Name: "Muni", URL: "https://foreupsoftware.com/index.php/booking/19765/2431#/teetimes"})
	if err != nil {
		t.Fatalf("target() unexpected error: %v", err)
	}
	if got.CourseID != "19765" || got.ScheduleID != "2431" {
		t.Errorf("target() = %+v", got)
	}

	if _, err := f.target(teetime.Course{Name: "Muni", URL: "https://foreupsoftware.com/"}); !IsUnsupported(err) {
		t.Errorf("target() error = %v, want UnsupportedCourseError", err)
	}
}

func TestQuick18FetchRaw(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teetimes/searchmatrix" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("teedate"); got != "20250601" {
			t.Errorf("teedate = %q, want 20250601", got)
		}
		w.Write([]byte(`<table>
			<tr><th>Time</th><th>Price</th></tr>
			<tr><td class="mtrxTeeTimes">8:04 AM</td><td class="mtrxPrice">$60.00</td></tr>
			<tr><td class="mtrxTeeTimes">8:13 AM</td><td class="mtrxPrice">$60.00</td></tr>
		</table>`))
	})

	q := NewQuick18(nil, nil)
	course := teetime.Course{Name: "Matrix", URL: server.URL + "/teetimes/searchmatrix"}

	slots, err := q.FetchRaw(context.Background(), course, dateRange(t, "2025-06-01", "2025-06-01"))
	if err != nil {
		t.Fatalf("FetchRaw() unexpected error: %v", err)
	}
	if len(slots) != 2 || slots[1].Time != "8:13 AM" || slots[1].Price != "$60.00" {
		t.Errorf("FetchRaw() = %+v", slots)
	}
	if got := q.BookingURL(course, "2025-06-01"); got != server.URL+"/teetimes/searchmatrix?teedate=20250601" {
		t.Errorf("BookingURL() = %q", got)
	}
}
