package engine

import (
	"sort"
	"time"
)

// addMonths steps t by calendar months, clamping the day of month so that
// Jan 31 + 1 month lands on the last day of February instead of spilling
// into March.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	anchor := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if last := daysInMonth(anchor.Year(), anchor.Month()); d > last {
		d = last
	}
	return time.Date(anchor.Year(), anchor.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// mergeDates unions two ascending date slices into one ascending slice
// without duplicates.
func mergeDates(a, b []time.Time) []time.Time {
	out := make([]time.Time, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	dedup := out[:0]
	for i, d := range out {
		if i == 0 || !d.Equal(dedup[len(dedup)-1]) {
			dedup = append(dedup, d)
		}
	}
	return dedup
}
