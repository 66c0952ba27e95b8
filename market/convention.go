package market

import (
	"fmt"

	"github.com/meenmo/curvekit/calendar"
)

// Frequency enumerates payment frequencies in months.
type Frequency int

const (
	FreqAnnual    Frequency = 12
	FreqSemi      Frequency = 6
	FreqQuarterly Frequency = 3
	FreqMonthly   Frequency = 1
	FreqTerm      Frequency = 0
)

// Convention is the calibration convention applied to every node of a par rate curve.
//
// The zero value means "no convention".
type Convention struct {
	Name           string
	DayCount       DayCount
	Calendar       calendar.CalendarID
	FixedFrequency Frequency
	SpotLagDays    int
}

// IsZero reports whether c is the zero value.
func (c Convention) IsZero() bool {
	return c == Convention{}
}

func (c Convention) String() string {
	return fmt.Sprintf("%s[%s %s %dM T+%d]", c.Name, c.DayCount, c.Calendar, int(c.FixedFrequency), c.SpotLagDays)
}

// Preset calibration conventions for the curves the desk bootstraps.
var (
	USDSOFROIS = Convention{
		Name:           "USD-SOFR-OIS",
		DayCount:       Act360,
		Calendar:       calendar.USD,
		FixedFrequency: FreqAnnual,
		SpotLagDays:    2,
	}

	USDLIBOR3M = Convention{
		Name:           "USD-LIBOR-3M",
		DayCount:       Act360,
		Calendar:       calendar.USD,
		FixedFrequency: FreqSemi,
		SpotLagDays:    2,
	}

	EURESTROIS = Convention{
		Name:           "EUR-ESTR-OIS",
		DayCount:       Act360,
		Calendar:       calendar.TARGET,
		FixedFrequency: FreqAnnual,
		SpotLagDays:    2,
	}

	JPYTONAROIS = Convention{
		Name:           "JPY-TONAR-OIS",
		DayCount:       Act365F,
		Calendar:       calendar.JPN,
		FixedFrequency: FreqAnnual,
		SpotLagDays:    2,
	}

	// KRWCD91 follows KRX CCP IRS: quarterly ACT/365F on the CD 91-day rate, T+1.
	KRWCD91 = Convention{
		Name:           "KRW-CD91",
		DayCount:       Act365F,
		Calendar:       calendar.KRW,
		FixedFrequency: FreqQuarterly,
		SpotLagDays:    1,
	}
)

var presets = map[string]Convention{
	USDSOFROIS.Name:  USDSOFROIS,
	USDLIBOR3M.Name:  USDLIBOR3M,
	EURESTROIS.Name:  EURESTROIS,
	JPYTONAROIS.Name: JPYTONAROIS,
	KRWCD91.Name:     KRWCD91,
}

// LookupConvention returns the preset convention with the given name.
func LookupConvention(name string) (Convention, bool) {
	c, ok := presets[name]
	return c, ok
}
