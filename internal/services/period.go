package services

import "time"

// monthPeriod returns the inclusive date range for a calendar month:
// first of the month through first of the next month minus one day.
func monthPeriod(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// dateOf truncates a timestamp to its calendar date at midnight UTC, the
// resolution expenses are stored at and period bounds are expressed in.
func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// yearPeriod returns the inclusive date range for a calendar year.
func yearPeriod(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}
