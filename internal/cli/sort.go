package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByTime  SortOrder = "time"
	SortByPrice SortOrder = "price"
)

// sortTimes sorts tee times in place. The sort is stable so equal keys keep
// upstream order.
func sortTimes(times []teetime.TeeTime, order SortOrder) {
	switch order {
	case SortByTime:
		sort.SliceStable(times, func(i, j int) bool {
			return compareByTime(times[i], times[j])
		})
	case SortByPrice:
		sort.SliceStable(times, func(i, j int) bool {
			pi, okI := priceValue(times[i].Price)
			pj, okJ := priceValue(times[j].Price)
			switch {
			case okI && okJ && pi != pj:
				return pi < pj
			case okI != okJ:
				// Known prices first
				return okI
			}
			return compareByTime(times[i], times[j])
		})
	}
}

// compareByTime orders by date, then clock time. Unparseable clocks go last.
func compareByTime(a, b teetime.TeeTime) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	ma, okA := teetime.ParseClock(a.Time)
	mb, okB := teetime.ParseClock(b.Time)
	if okA && okB {
		return ma < mb
	}
	return okA && !okB
}

// priceValue reads a display price such as "$45.00" or "45".
func priceValue(price string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "$"))
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
