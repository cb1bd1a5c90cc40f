package datagen

import "time"

// daysBetween counts whole days from a to b. Both are midnight-valued.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// isQ4 reports whether the date falls in October, November or December.
func isQ4(t time.Time) bool {
	return t.Month() >= time.October
}

// MonthStartsWithin returns every first-of-month date in [from, to].
// A mid-month `from` starts the walk at the first of the following month.
// This is the month granularity used by both invoice and marketing-spend
// generation, and by the post-hoc cardinality checks.
func MonthStartsWithin(from, to time.Time) []time.Time {
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	if first.Before(from) {
		first = first.AddDate(0, 1, 0)
	}
	var months []time.Time
	for m := first; !m.After(to); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
