package teetime

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

// ClockLayout is the display format for normalized tee times.
const ClockLayout = "3:04 PM"

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

// ParseClock parses a time of day into minutes after midnight.
// Supports formats: "07:30", "07:30:00", "7:30 AM", "7:30AM", "7:30 am"
func ParseClock(text string) (int, bool) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return 0, false
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}

	return 0, false
}

// ParseWindowEnd parses the exclusive end of a time window. It accepts
// everything ParseClock does plus "24:00", so a window can run to midnight.
func ParseWindowEnd(text string) (int, bool) {
	if strings.TrimSpace(text) == "24:00" {
		return 24 * 60, true
	}
	return ParseClock(text)
}

// FormatClock renders minutes after midnight in ClockLayout.
func FormatClock(minutes int) string {
	minutes = ((minutes % (24 * 60)) + 24*60) % (24 * 60)
	hours := minutes / 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	if hours > 12 {
		hours -= 12
	}
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%02d %s", hours, minutes%60, period)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(text string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(text))
}
