// Package normalize converts adapter-specific raw slots into TeeTime records.
//
// Upstream booking systems disagree on how they spell a time or a price. Everything
// here is a pure function: no I/O, no hidden state, the same RawSlot always yields
// the same TeeTime.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// BookingURLFunc builds the booking page for a course on a date.
type BookingURLFunc func(course teetime.Course, date string) string

// timestampLayouts carry an explicit zone and may be converted to the slot location.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// wallClockLayouts carry a date but no zone; they are already local to the course.
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Normalize converts one raw slot into a TeeTime.
func Normalize(raw teetime.RawSlot, course teetime.Course, bookingURL BookingURLFunc) teetime.TeeTime {
	date, clock := Clock(raw.Time, raw.Location)
	if date == "" {
		date = raw.Date
	}

	tt := teetime.TeeTime{
		Date:  date,
		Time:  clock,
		Price: Price(raw.Price),
	}
	if bookingURL != nil {
		tt.BookingURL = bookingURL(course, date)
	}
	if tt.BookingURL == "" {
		tt.BookingURL = course.URL
	}
	return tt
}

// All normalizes raw slots, preserving their order.
func All(raws []teetime.RawSlot, course teetime.Course, bookingURL BookingURLFunc) []teetime.TeeTime {
	out := make([]teetime.TeeTime, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, course, bookingURL))
	}
	return out
}

// Price coerces an upstream price into a display string.
// Nested objects use their "display" field, falling back to "amount";
// numbers are stringified; anything empty or unrecognized is teetime.PriceUnknown.
func Price(v any) string {
	switch p := v.(type) {
	case nil:
		return teetime.PriceUnknown
	case string:
		if s := strings.TrimSpace(p); s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(p), 'f', -1, 32)
	case int:
		return strconv.Itoa(p)
	case int64:
		return strconv.FormatInt(p, 10)
	case json.Number:
		return p.String()
	case map[string]any:
		if display := Price(p["display"]); display != teetime.PriceUnknown {
			return display
		}
		return Price(p["amount"])
	}
	return teetime.PriceUnknown
}

// Clock coerces an upstream time into teetime.ClockLayout.
// It also returns the date carried by the value, if any, so that a UTC
// timestamp converted into the course zone keeps the right play date.
// Numbers are minutes after midnight. Unparseable text is returned trimmed.
func Clock(v any, loc *time.Location) (date string, clock string) {
	switch t := v.(type) {
	case nil:
		return "", ""
	case float64:
		return "", teetime.FormatClock(int(t))
	case int:
		return "", teetime.FormatClock(t)
	case int64:
		return "", teetime.FormatClock(int(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return "", teetime.FormatClock(int(n))
		}
		return "", t.String()
	case string:
		return clockFromText(t, loc)
	}
	return "", ""
}

func clockFromText(text string, loc *time.Location) (string, string) {
	text = strings.TrimSpace(text)

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			if loc != nil {
				parsed = parsed.In(loc)
			}
			return parsed.Format(teetime.DateLayout), parsed.Format(teetime.ClockLayout)
		}
	}

	for _, layout := range wallClockLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.Format(teetime.DateLayout), parsed.Format(teetime.ClockLayout)
		}
	}

	if minutes, ok := teetime.ParseClock(text); ok {
		return "", teetime.FormatClock(minutes)
	}

	return "", text
}
