package core

import "time"

// AddYears returns base shifted by the given number of calendar years,
// keeping month and day. A Feb 29 base landing on a non-leap year clamps
// to Feb 28 rather than rolling over to Mar 1. Nil in, nil out.
func AddYears(base *time.Time, years int) *time.Time {
	if base == nil {
		return nil
	}
	b := *base
	t := time.Date(b.Year()+years, b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	if b.Month() == time.February && b.Day() == 29 && t.Month() == time.March {
		t = t.AddDate(0, 0, -1)
	}
	return &t
}
