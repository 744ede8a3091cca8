package notifier

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// MaxSummaryLines caps the tee time lines in one message; the rest are counted.
const MaxSummaryLines = 200

// FormatSummary renders the header line followed by one line per tee time:
//
//	<course> | <date> | <time> | <price> | <bookingUrl>
//
// Failed courses and courses without times are left out.
func FormatSummary(results []teetime.CourseResult, req teetime.ScanRequest) string {
	total, courses := 0, 0
	for _, r := range results {
		if len(r.Times) > 0 {
			total += len(r.Times)
			courses++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⛳ %d tee %s at %d %s (%s to %s, %s to %s)\n",
		total, plural(total, "time", "times"),
		courses, plural(courses, "course", "courses"),
		req.Dates.Start.Format(teetime.DateLayout),
		req.Dates.End.Format(teetime.DateLayout),
		teetime.FormatClock(req.Window.Start),
		teetime.FormatClock(req.Window.End),
	)

	written := 0
	for _, r := range results {
		for _, tt := range r.Times {
			if written == MaxSummaryLines {
				fmt.Fprintf(&b, "... and %d more\n", total-written)
				return strings.TrimSuffix(b.String(), "\n")
			}
			fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n", r.Course, tt.Date, tt.Time, tt.Price, tt.BookingURL)
			written++
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
