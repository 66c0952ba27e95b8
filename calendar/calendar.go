package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// NoHolidays treats every weekday as a business day.
	NoHolidays CalendarID = ""
	TARGET     CalendarID = "TARGET"
	JPN        CalendarID = "JPN"
	USD        CalendarID = "USD"
	KRW        CalendarID = "KRW"
)

// monthDay is a holiday that falls on the same date every year.
type monthDay struct {
	month time.Month
	day   int
}

var fixedHolidays = map[CalendarID][]monthDay{
	TARGET: {{time.January, 1}, {time.May, 1}, {time.December, 25}, {time.December, 26}},
	JPN:    {{time.January, 1}, {time.January, 2}, {time.January, 3}, {time.February, 11}, {time.May, 3}, {time.May, 4}, {time.May, 5}, {time.November, 3}, {time.December, 31}},
	USD:    {{time.January, 1}, {time.June, 19}, {time.July, 4}, {time.November, 11}, {time.December, 25}},
	KRW:    {{time.January, 1}, {time.March, 1}, {time.May, 5}, {time.June, 6}, {time.August, 15}, {time.October, 3}, {time.October, 9}, {time.December, 25}},
}

func isHoliday(cal CalendarID, d civil.Date) bool {
	for _, h := range fixedHolidays[cal] {
		if d.Month == h.month && d.Day == h.day {
			return true
		}
	}
	return false
}

// IsBusinessDay checks weekends and the calendar's holiday set.
func IsBusinessDay(cal CalendarID, d civil.Date) bool {
	switch d.In(time.UTC).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !isHoliday(cal, d)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, d civil.Date) civil.Date {
	origMonth := d.Month
	adj := d
	for !IsBusinessDay(cal, adj) {
		adj = adj.AddDays(1)
	}
	if adj.Month != origMonth {
		adj = d.AddDays(-1)
		for !IsBusinessDay(cal, adj) {
			adj = adj.AddDays(-1)
		}
	}
	return adj
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, d civil.Date, n int) civil.Date {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		d = d.AddDays(step)
		if IsBusinessDay(cal, d) {
			n -= step
		}
	}
	return d
}
