package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScanOutput contains data to be output
type ScanOutput struct {
	ScannedAt   time.Time              `json:"scanned_at"`
	Results     []teetime.CourseResult `json:"results"`
	TimeCount   int                    `json:"time_count"`
	FailedCount int                    `json:"failed_count"`
}

// NewScanOutput summarizes scan results for printing.
func NewScanOutput(results []teetime.CourseResult) *ScanOutput {
	out := &ScanOutput{ScannedAt: time.Now().UTC(), Results: results}
	for _, r := range results {
		out.TimeCount += len(r.Times)
		if r.Failed() {
			out.FailedCount++
		}
	}
	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *ScanOutput, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *ScanOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *ScanOutput, verbose bool) error {
	for _, r := range result.Results {
		if r.Failed() {
			fmt.Fprintf(w, "%s: %s\n", r.Course, r.Error)
			continue
		}
		if len(r.Times) == 0 {
			fmt.Fprintf(w, "%s: no tee times\n", r.Course)
			continue
		}

		fmt.Fprintf(w, "\n%s (%d tee times):\n", r.Course, len(r.Times))
		for _, t := range r.Times {
			fmt.Fprintf(w, "  %s  %8s  %s\n", t.Date, t.Time, t.Price)
			if verbose && t.BookingURL != "" {
				fmt.Fprintf(w, "       Book: %s\n", t.BookingURL)
			}
		}
	}

	if result.TimeCount == 0 {
		fmt.Fprintln(w, "\nNo tee times found.")
	} else {
		fmt.Fprintf(w, "\nTotal: %d tee times across %d courses\n", result.TimeCount, len(result.Results))
	}
	if result.FailedCount > 0 {
		fmt.Fprintf(w, "%d of %d courses could not be scanned\n", result.FailedCount, len(result.Results))
	}
	return nil
}
