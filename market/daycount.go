package market

import (
	"cloud.google.com/go/civil"

	"github.com/meenmo/curvekit/utils"
)

// DayCount enumerates year fraction conventions.
type DayCount string

const (
	Act360  DayCount = "ACT/360"
	Act365F DayCount = "ACT/365F"
	Dc30E   DayCount = "30E/360"
	ActAct  DayCount = "ACT/ACT"
)

// ParseDayCount maps a convention label to a DayCount.
func ParseDayCount(s string) (DayCount, error) {
	switch dc := DayCount(s); dc {
	case Act360, Act365F, Dc30E, ActAct:
		return dc, nil
	case "30/360":
		return Dc30E, nil
	default:
		return "", InvalidArgument("unknown day count " + s)
	}
}

// YearFraction computes the year fraction between two dates.
// Unrecognised conventions fall back to ACT/365F.
func (dc DayCount) YearFraction(start, end civil.Date) float64 {
	switch dc {
	case Act360:
		return float64(utils.Days(start, end)) / 360.0
	case Dc30E:
		// 30E/360 (Eurobond basis): both day-of-month values are capped at 30.
		d1 := min(start.Day, 30)
		d2 := min(end.Day, 30)
		return float64(360*(end.Year-start.Year)+30*(int(end.Month)-int(start.Month))+(d2-d1)) / 360.0
	case ActAct:
		return actActISDA(start, end)
	default:
		return float64(utils.Days(start, end)) / 365.0
	}
}

// actActISDA splits the period at year boundaries and divides each piece by
// the length of its own year.
func actActISDA(start, end civil.Date) float64 {
	if end.Before(start) {
		return -actActISDA(end, start)
	}
	yf := 0.0
	for cur := start; cur.Before(end); {
		next := civil.Date{Year: cur.Year + 1, Month: 1, Day: 1}
		if end.Before(next) {
			next = end
		}
		yearLen := civil.Date{Year: cur.Year + 1, Month: 1, Day: 1}.DaysSince(civil.Date{Year: cur.Year, Month: 1, Day: 1})
		yf += float64(next.DaysSince(cur)) / float64(yearLen)
		cur = next
	}
	return yf
}
