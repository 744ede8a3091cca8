package adapter

import (
	"context"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/metrics"
	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// WithMetrics records latency and outcome of every fetch. A nil recorder returns a unchanged.
func WithMetrics(a Adapter, rec *metrics.Recorder) Adapter {
	if rec == nil {
		return a
	}
	return &instrumentedAdapter{Adapter: a, rec: rec}
}

type instrumentedAdapter struct {
	Adapter
	rec *metrics.Recorder
}

func (i *instrumentedAdapter) FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error) {
	start := time.Now()
	slots, err := i.Adapter.FetchRaw(ctx, course, dates)
	i.rec.RecordUpstream(i.Name(), Outcome(err), time.Since(start))
	return slots, err
}

// Outcome maps a fetch error to its metrics label.
func Outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	if IsUnsupported(err) {
		return metrics.OutcomeUnsupported
	}
	if _, ok := AsParseError(err); ok {
		return metrics.OutcomeParseError
	}
	return metrics.OutcomeError
}
