package utils

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateParser converts YYYY-MM-DD to civil.Date.
func DateParser(strDate string) (civil.Date, error) {
	d, err := civil.ParseDate(strDate)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: %w", strDate, err)
	}
	return d, nil
}

// Days returns the number of calendar days from start to end.
func Days(start, end civil.Date) int {
	return end.DaysSince(start)
}

// AddMonth behaves like Excel's EDATE: the day of month is clamped to the
// last day of the target month instead of rolling into the next one.
func AddMonth(d civil.Date, months int) civil.Date {
	total := int(d.Month) - 1 + months
	year := d.Year + floorDiv(total, 12)
	month := total - floorDiv(total, 12)*12 + 1

	out := civil.Date{Year: year, Month: time.Month(month), Day: d.Day}
	if last := DaysInMonth(year, month); out.Day > last {
		out.Day = last
	}
	return out
}

// DaysInMonth returns the number of days in the given month (1-12).
func DaysInMonth(year, month int) int {
	first := civil.Date{Year: year, Month: time.Month(month), Day: 1}
	return AddMonthStart(first).AddDays(-1).Day
}

// AddMonthStart returns the first day of the month following d.
func AddMonthStart(d civil.Date) civil.Date {
	if d.Month == 12 {
		return civil.Date{Year: d.Year + 1, Month: 1, Day: 1}
	}
	return civil.Date{Year: d.Year, Month: d.Month + 1, Day: 1}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
