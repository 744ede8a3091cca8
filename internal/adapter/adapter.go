package adapter

import (
	"context"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// Adapter fetches tee times for one family of upstream booking sites.
type Adapter interface {
	// Name identifies the adapter in logs and metrics.
	Name() string

	// FetchRaw returns the raw slots for every date in the range, in upstream order.
	FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error)

	// BookingURL returns the page a golfer opens to book the course on date.
	BookingURL(course teetime.Course, date string) string
}
