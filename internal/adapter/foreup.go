package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const (
	ForeUpName    = "foreup"
	ForeUpBaseURL = "https://foreupsoftware.com/index.php/booking"

	foreupDateLayout = "01-02-2006"
)

type foreupCourse struct {
	CourseID   string
	ScheduleID string
}

var foreupKnownCourses = map[string]foreupCourse{
	"francis byrne": {CourseID: "22528", ScheduleID: "11078"},
}

var (
	foreupPathPattern = regexp.MustCompile(`/booking/(\d+)/(\d+)`)

	foreupSelectors = markupSelectors{
		Row:   ".time-slot-class",
		Time:  ".time",
		Price: ".price",
	}
)

// ForeUp scrapes the ForeUp public booking page.
type ForeUp struct {
	client  *http.Client
	baseURL string
	loc     *time.Location
}

// NewForeUp creates a ForeUp adapter.
func NewForeUp(client *http.Client, loc *time.Location) *ForeUp {
	return &ForeUp{
		client:  newHTTPClient(client, DefaultTimeout),
		baseURL: ForeUpBaseURL,
		loc:     loc,
	}
}

func (f *ForeUp) Name() string { return ForeUpName }

func (f *ForeUp) knownNames() []string { return knownNames(foreupKnownCourses) }

// FetchRaw loads the booking page once per date and scrapes it.
func (f *ForeUp) FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error) {
	target, err := f.target(course)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":     "text/html,application/xhtml+xml",
		"User-Agent": BrowserUserAgent,
	}

	slots := make([]teetime.RawSlot, 0)
	for _, day := range dates.Days() {
		d, err := teetime.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", day, err)
		}
		pageURL := f.pageURL(target) + "?date=" + url.QueryEscape(d.Format(foreupDateLayout))

		req, err := newRequest(ctx, http.MethodGet, pageURL, nil, headers)
		if err != nil {
			return nil, err
		}
		body, err := fetch(f.client, ForeUpName, req)
		if err != nil {
			return nil, err
		}
		daySlots, err := scrapeSlots(ForeUpName, body, day, foreupSelectors, f.loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

func (f *ForeUp) BookingURL(course teetime.Course, _ string) string {
	target, err := f.target(course)
	if err != nil {
		return ""
	}
	return f.pageURL(target) + "#/teetimes"
}

func (f *ForeUp) pageURL(target foreupCourse) string {
	return f.baseURL + "/" + target.CourseID + "/" + target.ScheduleID
}

func (f *ForeUp) target(course teetime.Course) (foreupCourse, error) {
	if known, ok := foreupKnownCourses[nameKey(course.Name)]; ok {
		return known, nil
	}
	m := foreupPathPattern.FindStringSubmatch(course.URL)
	if m == nil {
		return foreupCourse{}, &UnsupportedCourseError{Course: course.Name, Reason: "no ForeUp course and schedule id in url"}
	}
	return foreupCourse{CourseID: m[1], ScheduleID: m[2]}, nil
}
