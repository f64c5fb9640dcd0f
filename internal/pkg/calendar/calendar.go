package calendar

import "time"

// MonthBounds returns the first and last calendar day of the given month.
func MonthBounds(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// CountWorkingDays counts the Monday-Friday days in [start, end] inclusive.
// Holidays are not considered.
func CountWorkingDays(start, end time.Time) int {
	days := 0
	for cur := truncateToDay(start); !cur.After(truncateToDay(end)); cur = cur.AddDate(0, 0, 1) {
		if IsWorkingDay(cur) {
			days++
		}
	}
	return days
}

// IsWorkingDay reports whether d falls on a weekday.
func IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
