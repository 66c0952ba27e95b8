package market

import (
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meenmo/curvekit/utils"
)

// Tenor is a calendar period such as 6M or 5Y.
//
// Years are held as months and weeks as days, so 12M and 1Y compare equal.
type Tenor struct {
	Months int
	Days   int
}

// Common tenors.
var (
	TenorON  = Tenor{Days: 1}
	Tenor1W  = Tenor{Days: 7}
	Tenor1M  = Tenor{Months: 1}
	Tenor3M  = Tenor{Months: 3}
	Tenor6M  = Tenor{Months: 6}
	Tenor1Y  = Tenor{Months: 12}
	Tenor2Y  = Tenor{Months: 24}
	Tenor5Y  = Tenor{Months: 60}
	Tenor10Y = Tenor{Months: 120}
)

// TenorOfMonths returns a tenor of n months.
func TenorOfMonths(n int) Tenor { return Tenor{Months: n} }

// TenorOfYears returns a tenor of n years.
func TenorOfYears(n int) Tenor { return Tenor{Months: 12 * n} }

// ParseTenor parses strings like "1W", "3M", "10Y", "1Y6M" or "ON".
func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "ON" {
		return TenorON, nil
	}
	if s == "" {
		return Tenor{}, InvalidArgument("empty tenor")
	}

	var t Tenor
	rest := s
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 || i == len(rest) {
			return Tenor{}, InvalidArgument("malformed tenor " + s)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return Tenor{}, InvalidArgument("malformed tenor " + s)
		}
		var ok bool
		switch rest[i] {
		case 'D':
			t.Days, ok = addScaled(t.Days, n, 1)
		case 'W':
			t.Days, ok = addScaled(t.Days, n, 7)
		case 'M':
			t.Months, ok = addScaled(t.Months, n, 1)
		case 'Y':
			t.Months, ok = addScaled(t.Months, n, 12)
		default:
			return Tenor{}, InvalidArgument("malformed tenor " + s)
		}
		if !ok {
			return Tenor{}, InvalidArgument("tenor out of range " + s)
		}
		rest = rest[i+1:]
	}
	if t.IsZero() {
		return Tenor{}, InvalidArgument("zero tenor " + s)
	}
	return t, nil
}

// addScaled returns acc + n*unit for non-negative n, or false on overflow.
func addScaled(acc, n, unit int) (int, bool) {
	if n > (math.MaxInt-acc)/unit {
		return 0, false
	}
	return acc + n*unit, true
}

// MustParseTenor is like ParseTenor but panics on malformed input.
// Intended for presets and tests.
func MustParseTenor(s string) Tenor {
	t, err := ParseTenor(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsZero reports whether the tenor is the empty period.
func (t Tenor) IsZero() bool {
	return t.Months == 0 && t.Days == 0
}

// AddTo adds the tenor to d. Months are added EDATE-style (clamped at month end), then days.
func (t Tenor) AddTo(d civil.Date) civil.Date {
	if t.Months != 0 {
		d = utils.AddMonth(d, t.Months)
	}
	return d.AddDays(t.Days)
}

func (t Tenor) String() string {
	if t.IsZero() {
		return "0D"
	}
	var b strings.Builder
	if y := t.Months / 12; y != 0 {
		b.WriteString(strconv.Itoa(y) + "Y")
	}
	if m := t.Months % 12; m != 0 {
		b.WriteString(strconv.Itoa(m) + "M")
	}
	switch {
	case t.Days == 0:
	case t.Days%7 == 0:
		b.WriteString(strconv.Itoa(t.Days/7) + "W")
	default:
		b.WriteString(strconv.Itoa(t.Days) + "D")
	}
	return b.String()
}
