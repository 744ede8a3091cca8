package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const (
	KennaName   = "kenna"
	KennaAPIURL = "https://phx-api-be-east-1b.kenna.io/v2/tee-times"
)

// kennaCourse is the pair of upstream parameters a TeeItUp course needs.
type kennaCourse struct {
	Alias    string
	Facility string
}

var kennaKnownCourses = map[string]kennaCourse{
	"neshanic": {Alias: "somerset-group-v2", Facility: "7083"},
}

// Kenna queries the TeeItUp booking engine API (kenna.io).
type Kenna struct {
	client *http.Client
	apiURL string
	loc    *time.Location
}

// NewKenna creates a Kenna adapter. Upstream times are rendered in loc.
func NewKenna(client *http.Client, loc *time.Location) *Kenna {
	return &Kenna{
		client: newHTTPClient(client, DefaultTimeout),
		apiURL: KennaAPIURL,
		loc:    loc,
	}
}

func (k *Kenna) Name() string { return KennaName }

func (k *Kenna) knownNames() []string { return knownNames(kennaKnownCourses) }

// FetchRaw issues one API call per date.
func (k *Kenna) FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error) {
	target, err := k.target(course)
	if err != nil {
		return nil, err
	}

	origin := "https://" + target.Alias + ".book.teeitup.com"
	headers := map[string]string{
		"Accept":     "application/json, text/plain, */*",
		"Origin":     origin,
		"Referer":    origin + "/",
		"User-Agent": UserAgent,
		"x-be-alias": target.Alias,
	}

	slots := make([]teetime.RawSlot, 0)
	for _, date := range dates.Days() {
		q := url.Values{}
		q.Set("date", date)
		q.Set("facilityIds", target.Facility)

		req, err := newRequest(ctx, http.MethodGet, k.apiURL+"?"+q.Encode(), nil, headers)
		if err != nil {
			return nil, err
		}
		body, err := fetch(k.client, KennaName, req)
		if err != nil {
			return nil, err
		}
		daySlots, err := parseKenna(body, target.Facility, date, k.loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

func (k *Kenna) BookingURL(course teetime.Course, date string) string {
	target, err := k.target(course)
	if err != nil {
		return ""
	}
	q := url.Values{}
	q.Set("course", target.Facility)
	q.Set("date", date)
	return "https://" + target.Alias + ".book.teeitup.com/?" + q.Encode()
}

// target resolves a known course by name, otherwise reads alias and facility from the URL.
func (k *Kenna) target(course teetime.Course) (kennaCourse, error) {
	if known, ok := kennaKnownCourses[nameKey(course.Name)]; ok {
		return known, nil
	}

	u, err := url.Parse(course.URL)
	if err != nil || u.Host == "" {
		return kennaCourse{}, &UnsupportedCourseError{Course: course.Name, Reason: "course has no TeeItUp url"}
	}

	q := u.Query()
	target := kennaCourse{Alias: q.Get("alias"), Facility: q.Get("course")}
	if target.Facility == "" {
		target.Facility = q.Get("facilityIds")
	}
	host := strings.ToLower(u.Hostname())
	if target.Alias == "" && (strings.HasSuffix(host, ".teeitup.com") || strings.HasSuffix(host, ".teeitup.golf")) {
		target.Alias = strings.Split(host, ".")[0]
	}

	if target.Alias == "" {
		return kennaCourse{}, &UnsupportedCourseError{Course: course.Name, Reason: "no TeeItUp alias in url"}
	}
	if target.Facility == "" {
		return kennaCourse{}, &UnsupportedCourseError{Course: course.Name, Reason: "no facility id in url"}
	}
	return target, nil
}

// parseKenna accepts either response shape the API has served: an object keyed by
// facility id, or an array of course entries each holding teetimes with rates in cents.
func parseKenna(body []byte, facility, date string, loc *time.Location) ([]teetime.RawSlot, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, newParseError(KennaName, body, fmt.Errorf("decoding JSON: %w", err))
	}

	slots := make([]teetime.RawSlot, 0)
	switch v := doc.(type) {
	case map[string]any:
		items, _ := v[facility].([]any)
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok || m["time"] == nil {
				continue
			}
			slots = append(slots, teetime.RawSlot{
				Date:     date,
				Time:     m["time"],
				Price:    m["greenFee"],
				Location: loc,
			})
		}
	case []any:
		for _, entry := range v {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			times, _ := m["teetimes"].([]any)
			for _, item := range times {
				tt, ok := item.(map[string]any)
				if !ok || tt["teetime"] == nil {
					continue
				}
				slots = append(slots, teetime.RawSlot{
					Date:     date,
					Time:     tt["teetime"],
					Price:    kennaRate(tt["rates"]),
					Location: loc,
				})
			}
		}
	default:
		return nil, newParseError(KennaName, body, fmt.Errorf("unexpected top-level JSON %T", doc))
	}
	return slots, nil
}

// kennaRate returns the first rate's cart fee, or walking fee, in dollars.
func kennaRate(rates any) any {
	list, _ := rates.([]any)
	if len(list) == 0 {
		return nil
	}
	rate, ok := list[0].(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range []string{"greenFeeCart", "greenFeeWalking"} {
		if cents, ok := rate[key].(float64); ok {
			return cents / 100
		}
	}
	return nil
}
