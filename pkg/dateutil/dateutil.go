package dateutil

import (
	"time"
)

// AddMonths adds a specified number of months to a date, clamping to the last day of the target
// month so that Jan 31 + 1 month is Feb 28/29 rather than Mar 2/3.
func AddMonths(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	first := time.Date(y, m+time.Month(months), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// PeriodEnd returns the calendar date at which the given 1-based monthly period ends for an
// investment started on start.
func PeriodEnd(start time.Time, period int) time.Time {
	return AddMonths(start, period)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
