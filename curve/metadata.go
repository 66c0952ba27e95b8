package curve

import (
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meenmo/curvekit/market"
)

// ParameterMetadata describes one curve parameter.
type ParameterMetadata interface {
	Label() string
	String() string
}

// DatedParameterMetadata is parameter metadata anchored to a date.
type DatedParameterMetadata interface {
	ParameterMetadata
	Date() civil.Date
}

// TenorDateParameterMetadata is produced by tenor-based nodes.
type TenorDateParameterMetadata struct {
	date  civil.Date
	tenor market.Tenor
	label string
}

func (m TenorDateParameterMetadata) Date() civil.Date    { return m.date }
func (m TenorDateParameterMetadata) Tenor() market.Tenor { return m.tenor }
func (m TenorDateParameterMetadata) Label() string       { return m.label }

func (m TenorDateParameterMetadata) String() string {
	return fmt.Sprintf("%s@%s", m.label, m.date)
}

// DateParameterMetadata is produced by date-based nodes.
type DateParameterMetadata struct {
	date  civil.Date
	label string
}

func (m DateParameterMetadata) Date() civil.Date { return m.date }
func (m DateParameterMetadata) Label() string    { return m.label }

func (m DateParameterMetadata) String() string {
	return fmt.Sprintf("%s@%s", m.label, m.date)
}

// Metadata describes a curve's identity, axes and parameters, independent of its values.
//
// DayCount is empty unless the x-axis is a year fraction.
type Metadata struct {
	Name       market.CurveName
	XValueType market.ValueType
	YValueType market.ValueType
	DayCount   market.DayCount
	Parameters []ParameterMetadata
}

// ParameterCount returns the number of per-node parameters.
func (m Metadata) ParameterCount() int {
	return len(m.Parameters)
}

func (m Metadata) String() string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.String()
	}
	return fmt.Sprintf("CurveMetadata{name=%s, x=%s, y=%s, dayCount=%s, parameters=[%s]}",
		m.Name, m.XValueType, m.YValueType, m.DayCount, strings.Join(params, ", "))
}

// NodeTimes converts dated parameters to x-axis year fractions from valuationDate
// using the metadata's day count. Every parameter must carry a date and the
// resulting times must be non-decreasing.
func NodeTimes(m Metadata, valuationDate civil.Date) ([]float64, error) {
	if m.DayCount == "" {
		return nil, market.InvalidArgument(fmt.Sprintf("curve %s has no day count", m.Name))
	}
	times := make([]float64, 0, len(m.Parameters))
	for i, p := range m.Parameters {
		dated, ok := p.(DatedParameterMetadata)
		if !ok {
			return nil, market.InvalidArgument(fmt.Sprintf("parameter %d (%s) has no date", i, p.Label()))
		}
		times = append(times, m.DayCount.YearFraction(valuationDate, dated.Date()))
	}
	if !slices.IsSorted(times) {
		return nil, market.InvalidArgument(fmt.Sprintf("curve %s node dates are not increasing", m.Name))
	}
	return times, nil
}
