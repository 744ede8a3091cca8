package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const (
	EZLinksName = "ezlinks"

	ezlinksSearchPath  = "/api/search/search"
	ezlinksBookingPath = "/index.html#/search"
	ezlinksDateLayout  = "01/02/2006"
)

// ezlinksKnownCourses maps course names to their EZLinks reservation site.
var ezlinksKnownCourses = map[string]ezlinksCourse{
	"galloping hill": {BaseURL: "https://gallopinghillgolf.ezlinksgolf.com"},
}

type ezlinksCourse struct {
	BaseURL   string
	CourseIDs []int
}

// ezlinksSearch is the POST body of the EZLinks search endpoint. The field
// names are the upstream's obfuscated ones.
type ezlinksSearch struct {
	CourseIDs []int  `json:"p01,omitempty"`
	Date      string `json:"p02"`
	From      string `json:"p03"`
	To        string `json:"p04"`
	HoleType  int    `json:"p05"`
	Players   int    `json:"p06"`
	Hot       bool   `json:"p07"`
}

type ezlinksSlot struct {
	Time  any `json:"r24"`
	Price any `json:"r08"`
}

// EZLinks queries the EZLinks reservation search API.
type EZLinks struct {
	client *http.Client
	known  map[string]ezlinksCourse
	loc    *time.Location
}

// NewEZLinks creates an EZLinks adapter.
func NewEZLinks(client *http.Client, loc *time.Location) *EZLinks {
	return &EZLinks{
		client: newHTTPClient(client, DefaultTimeout),
		known:  ezlinksKnownCourses,
		loc:    loc,
	}
}

func (e *EZLinks) Name() string { return EZLinksName }

func (e *EZLinks) knownNames() []string { return knownNames(e.known) }

// FetchRaw posts one search per date.
func (e *EZLinks) FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error) {
	target, err := e.target(course)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"Origin":       target.BaseURL,
		"User-Agent":   UserAgent,
	}

	slots := make([]teetime.RawSlot, 0)
	for _, day := range dates.Days() {
		d, err := teetime.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", day, err)
		}
		payload, err := json.Marshal(ezlinksSearch{
			CourseIDs: target.CourseIDs,
			Date:      d.Format(ezlinksDateLayout),
			From:      "5:00 AM",
			To:        "7:00 PM",
			HoleType:  0,
			Players:   2,
			Hot:       false,
		})
		if err != nil {
			return nil, fmt.Errorf("encoding search: %w", err)
		}

		req, err := newRequest(ctx, http.MethodPost, target.BaseURL+ezlinksSearchPath, bytes.NewReader(payload), headers)
		if err != nil {
			return nil, err
		}
		body, err := fetch(e.client, EZLinksName, req)
		if err != nil {
			return nil, err
		}
		daySlots, err := parseEZLinks(body, day, e.loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

func (e *EZLinks) BookingURL(course teetime.Course, _ string) string {
	target, err := e.target(course)
	if err != nil {
		return ""
	}
	return target.BaseURL + ezlinksBookingPath
}

// target resolves a known course by name, otherwise uses the scheme and host of the
// course URL plus any courseIds query parameter.
func (e *EZLinks) target(course teetime.Course) (ezlinksCourse, error) {
	if known, ok := e.known[nameKey(course.Name)]; ok {
		return known, nil
	}

	u, err := url.Parse(course.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ezlinksCourse{}, &UnsupportedCourseError{Course: course.Name, Reason: "course has no EZLinks url"}
	}

	target := ezlinksCourse{BaseURL: u.Scheme + "://" + u.Host}
	for _, raw := range strings.Split(u.Query().Get("courseIds"), ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			target.CourseIDs = append(target.CourseIDs, id)
		}
	}
	return target, nil
}

func parseEZLinks(body []byte, date string, loc *time.Location) ([]teetime.RawSlot, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, newParseError(EZLinksName, body, fmt.Errorf("decoding JSON: %w", err))
	}

	slots := make([]teetime.RawSlot, 0)
	var items []ezlinksSlot
	if raw, ok := doc["r06"]; !ok || json.Unmarshal(raw, &items) != nil {
		return slots, nil
	}
	for _, item := range items {
		if item.Time == nil {
			continue
		}
		slots = append(slots, teetime.RawSlot{
			Date:     date,
			Time:     item.Time,
			Price:    item.Price,
			Location: loc,
		})
	}
	return slots, nil
}
