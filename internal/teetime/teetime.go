package teetime

import "time"

// PriceUnknown is the display price used when an upstream gives no price information.
const PriceUnknown = "N/A"

// Course is a registered golf course. Name is the unique key used for selection;
// URL identifies which adapter and upstream parameters apply.
type Course struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RawSlot is one bookable time as an adapter found it, before normalization.
// Time and Price hold whatever the upstream provided: strings, numbers,
// nested objects or nil.
type RawSlot struct {
	Date     string         // YYYY-MM-DD the slot was fetched for
	Time     any            // upstream time representation
	Price    any            // upstream price representation
	Location *time.Location // zone to render absolute upstream times in, nil keeps them as-is
}

// TeeTime is a normalized tee time.
type TeeTime struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Price      string `json:"price"`
	BookingURL string `json:"bookingUrl"`
}

// CourseResult holds the outcome of scanning a single course.
type CourseResult struct {
	Course string    `json:"course"`
	Times  []TeeTime `json:"times"`
	Error  string    `json:"error,omitempty"`
}

// Failed reports whether the course could not be scanned.
func (r CourseResult) Failed() bool {
	return r.Error != ""
}

// NewFailedResult builds the result recorded for a course whose scan failed.
func NewFailedResult(course, message string) CourseResult {
	return CourseResult{
		Course: course,
		Times:  []TeeTime{},
		Error:  message,
	}
}
