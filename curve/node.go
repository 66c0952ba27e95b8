package curve

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/meenmo/curvekit/calendar"
	"github.com/meenmo/curvekit/market"
)

// Node is one node specification of a curve configuration.
//
// Implementations are value types that know how to describe themselves as
// parameter metadata for a given valuation date. A node may implement
// Equal(Node) bool to control how InterpolatedConfig.Equal compares it.
type Node interface {
	Label() string
	Metadata(valuationDate civil.Date) ParameterMetadata
}

// TenorNode is a node placed at a tenor from spot, such as the 5Y swap node.
type TenorNode struct {
	Tenor          market.Tenor
	InstrumentType market.InstrumentType
	Calendar       calendar.CalendarID
	SpotLagDays    int
	NodeLabel      string // overrides the tenor as label when set
}

// NewTenorNode returns a node at tenor under the convention's calendar and spot lag.
func NewTenorNode(tenor market.Tenor, instrumentType market.InstrumentType, convention market.Convention) TenorNode {
	return TenorNode{
		Tenor:          tenor,
		InstrumentType: instrumentType,
		Calendar:       convention.Calendar,
		SpotLagDays:    convention.SpotLagDays,
	}
}

func (n TenorNode) Label() string {
	if n.NodeLabel != "" {
		return n.NodeLabel
	}
	return n.Tenor.String()
}

// Metadata resolves the node date as spot + tenor, Modified Following adjusted.
func (n TenorNode) Metadata(valuationDate civil.Date) ParameterMetadata {
	spot := calendar.AddBusinessDays(n.Calendar, valuationDate, n.SpotLagDays)
	end := calendar.Adjust(n.Calendar, n.Tenor.AddTo(spot))
	return TenorDateParameterMetadata{
		date:  end,
		tenor: n.Tenor,
		label: n.Label(),
	}
}

// DateNode is a node pinned to a fixed date, such as a futures expiry.
type DateNode struct {
	Date           civil.Date
	InstrumentType market.InstrumentType
	NodeLabel      string
}

func (n DateNode) Label() string {
	if n.NodeLabel != "" {
		return n.NodeLabel
	}
	return n.Date.String()
}

func (n DateNode) Metadata(civil.Date) ParameterMetadata {
	return DateParameterMetadata{date: n.Date, label: n.Label()}
}

func (n DateNode) String() string {
	return fmt.Sprintf("DateNode{%s %s}", n.Date, n.InstrumentType)
}

func (n TenorNode) String() string {
	return fmt.Sprintf("TenorNode{%s %s %s T+%d}", n.Tenor, n.InstrumentType, n.Calendar, n.SpotLagDays)
}
