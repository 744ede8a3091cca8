package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const (
	Quick18Name = "quick18"

	quick18MatrixPath = "/teetimes/searchmatrix"
	quick18DateLayout = "20060102"
)

var quick18Selectors = markupSelectors{
	Row:   "tr",
	Time:  ".mtrxTeeTimes",
	Price: ".mtrxPrice",
}

// Quick18 scrapes the Quick18 tee time search matrix.
type Quick18 struct {
	client *http.Client
	loc    *time.Location
}

// NewQuick18 creates a Quick18 adapter.
func NewQuick18(client *http.Client, loc *time.Location) *Quick18 {
	return &Quick18{
		client: newHTTPClient(client, DefaultTimeout),
		loc:    loc,
	}
}

func (q *Quick18) Name() string { return Quick18Name }

// FetchRaw loads the search matrix once per date and scrapes it.
func (q *Quick18) FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error) {
	base, err := q.base(course)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":     "text/html,application/xhtml+xml",
		"User-Agent": BrowserUserAgent,
	}

	slots := make([]teetime.RawSlot, 0)
	for _, day := range dates.Days() {
		pageURL, err := matrixURL(base, day)
		if err != nil {
			return nil, err
		}
		req, err := newRequest(ctx, http.MethodGet, pageURL, nil, headers)
		if err != nil {
			return nil, err
		}
		body, err := fetch(q.client, Quick18Name, req)
		if err != nil {
			return nil, err
		}
		daySlots, err := scrapeSlots(Quick18Name, body, day, quick18Selectors, q.loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

func (q *Quick18) BookingURL(course teetime.Course, date string) string {
	base, err := q.base(course)
	if err != nil {
		return ""
	}
	u, err := matrixURL(base, date)
	if err != nil {
		return ""
	}
	return u
}

// base returns scheme and host of the course's Quick18 site.
func (q *Quick18) base(course teetime.Course) (string, error) {
	u, err := url.Parse(course.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", &UnsupportedCourseError{Course: course.Name, Reason: "course has no Quick18 url"}
	}
	return u.Scheme + "://" + u.Host, nil
}

func matrixURL(base, day string) (string, error) {
	d, err := teetime.ParseDate(day)
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", day, err)
	}
	return base + quick18MatrixPath + "?teedate=" + d.Format(quick18DateLayout), nil
}
