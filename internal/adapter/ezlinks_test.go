package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

func TestEZLinksFetchRaw(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSlots int
		wantErr   bool
	}{
		{
			name:      "slots under r06",
			body:      `{"r06":[{"r24":"7:30 AM","r08":45},{"r24":"8:10 AM","r08":52.5}]}`,
			wantSlots: 2,
		},
		{
			name:      "no r06 key",
			body:      `{"r01":true}`,
			wantSlots: 0,
		},
		{
			name:      "r06 not an array",
			body:      `{"r06":null}`,
			wantSlots: 0,
		},
		{
			name:    "malformed JSON",
			body:    `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if r.URL.Path != "/api/search/search" {
					t.Errorf("path = %s, want /api/search/search", r.URL.Path)
				}
				var search ezlinksSearch
				if err := json.NewDecoder(r.Body).Decode(&search); err != nil {
					t.Errorf("decoding search body: %v", err)
				}
				if search.Date != "06/01/2025" {
					t.Errorf("p02 = %q, want 06/01/2025", search.Date)
				}
				if len(search.CourseIDs) != 2 || search.CourseIDs[0] != 11 {
					t.Errorf("p01 = %v, want [11 12]", search.CourseIDs)
				}
				w.Write([]byte(tt.body))
			})

			e := NewEZLinks(nil, nil)
			course := teetime.Course{Name: "Somewhere", URL: server.URL + "/index.html?courseIds=11,12"}

			slots, err := e.FetchRaw(context.Background(), course, dateRange(t, "2025-06-01", "2025-06-01"))
			if tt.wantErr {
				if _, ok := AsParseError(err); !ok {
					t.Fatalf("FetchRaw() error = %v, want UpstreamParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchRaw() unexpected error: %v", err)
			}
			if len(slots) != tt.wantSlots {
				t.Fatalf("FetchRaw() returned %d slots, want %d", len(slots), tt.wantSlots)
			}
			if tt.wantSlots > 0 && (slots[0].Time != "7:30 AM" || slots[0].Price != 45.0) {
				t.Errorf("first slot = %+v", slots[0])
			}
		})
	}
}

func TestEZLinksKnownCourse(t *testing.T) {
	var called bool
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"r06":[]}`))
	})

	e := NewEZLinks(nil, nil)
	e.known = map[string]ezlinksCourse{"galloping hill": {BaseURL: server.URL}}

	course := teetime.Course{Name: "Galloping Hill"}
	if _, err := e.FetchRaw(context.Background(), course, dateRange(t, "2025-06-01", "2025-06-01")); err != nil {
		t.Fatalf("FetchRaw() unexpected error: %v", err)
	}
	if !called {
		t.Error("known course did not reach its base URL")
	}
	if got := e.BookingURL(course, "2025-06-01"); got != server.URL+"/index.html#/search" {
		t.Errorf("BookingURL() = %q", got)
	}
}
