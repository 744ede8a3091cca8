package teetime

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxScanDays bounds how many days a single scan may cover.
const DefaultMaxScanDays = 14

// ScanPayload is the JSON body of a scan request as sent by clients.
type ScanPayload struct {
	Courses    json.RawMessage `json:"courses"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	WebhookURL string          `json:"webhookUrl,omitempty"`
}

// ScanRequest is a validated scan.
type ScanRequest struct {
	Courses   []string
	Dates     DateRange
	Window    TimeWindow
	NotifyURL string
}

// DateRange is an inclusive range of play dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns every date in the range as YYYY-MM-DD, in order.
func (r DateRange) Days() []string {
	days := make([]string, 0)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}

// Key renders the range for logs and cache keys.
func (r DateRange) Key() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// TimeWindow is a half-open [Start, End) window of minutes after midnight.
type TimeWindow struct {
	Start int
	End   int
}

// Contains reports whether minutes falls inside the window.
func (w TimeWindow) Contains(minutes int) bool {
	return minutes >= w.Start && minutes < w.End
}

// ValidationError reports a scan request rejected before any upstream call.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// NewScanPayload builds a payload from already-typed values, as the CLI does.
func NewScanPayload(courses []string, startDate, endDate, startTime, endTime, webhookURL string) ScanPayload {
	raw, _ := json.Marshal(courses)
	return ScanPayload{
		Courses:    raw,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  startTime,
		EndTime:    endTime,
		WebhookURL: webhookURL,
	}
}

// Validate checks the payload and converts it into a ScanRequest.
// maxDays <= 0 uses DefaultMaxScanDays.
func (p ScanPayload) Validate(maxDays int) (ScanRequest, error) {
	if maxDays <= 0 {
		maxDays = DefaultMaxScanDays
	}

	missing := make([]string, 0)
	courses, coursesOK := decodeCourses(p.Courses)
	if !coursesOK {
		missing = append(missing, "courses")
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"startDate", p.StartDate},
		{"endDate", p.EndDate},
		{"startTime", p.StartTime},
		{"endTime", p.EndTime},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return ScanRequest{}, &ValidationError{Fields: missing}
	}

	start, err := ParseDate(p.StartDate)
	if err != nil {
		return ScanRequest{}, invalid("startDate", "startDate must be YYYY-MM-DD")
	}
	end, err := ParseDate(p.EndDate)
	if err != nil {
		return ScanRequest{}, invalid("endDate", "endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return ScanRequest{}, invalid("endDate", "endDate must not be before startDate")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > maxDays {
		return ScanRequest{}, invalid("endDate", fmt.Sprintf("date range covers %d days, at most %d allowed", days, maxDays))
	}

	startMin, ok := ParseClock(p.StartTime)
	if !ok {
		return ScanRequest{}, invalid("startTime", "startTime must be a time of day like 07:00")
	}
	endMin, ok := ParseWindowEnd(p.EndTime)
	if !ok {
		return ScanRequest{}, invalid("endTime", "endTime must be a time of day like 12:00")
	}
	if endMin <= startMin {
		return ScanRequest{}, invalid("endTime", "endTime must be after startTime")
	}

	notify := strings.TrimSpace(p.WebhookURL)
	if notify != "" {
		u, err := url.Parse(notify)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ScanRequest{}, invalid("webhookUrl", "webhookUrl must be an http(s) URL")
		}
	}

	return ScanRequest{
		Courses:   courses,
		Dates:     DateRange{Start: start, End: end},
		Window:    TimeWindow{Start: startMin, End: endMin},
		NotifyURL: notify,
	}, nil
}

// decodeCourses accepts a non-empty JSON array of non-blank strings.
func decodeCourses(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var courses []string
	if err := json.Unmarshal(raw, &courses); err != nil || len(courses) == 0 {
		return nil, false
	}
	for i, c := range courses {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, false
		}
		courses[i] = c
	}
	return courses, true
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Message: message}
}
