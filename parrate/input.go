// Package parrate holds the market-observed par rates a curve is bootstrapped from.
package parrate

import (
	"fmt"
	"hash/fnv"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meenmo/curvekit/market"
)

// Node is one calibration point: the instrument quoted at a tenor and its par rate.
type Node struct {
	Tenor          market.Tenor
	InstrumentType market.InstrumentType
	ParRate        decimal.Decimal
}

func (n Node) String() string {
	return fmt.Sprintf("%s/%s/%s", n.Tenor, n.InstrumentType, n.ParRate)
}

// CurveInput is the set of par rates for one named curve under a calibration convention.
//
// A CurveInput is immutable. Every slice is copied on the way in and on the way out,
// and the shift operations return new instances.
type CurveInput struct {
	name            market.CurveName
	tenors          []market.Tenor
	instrumentTypes []market.InstrumentType
	parRates        []decimal.Decimal
	convention      market.Convention
}

// New validates the aligned node slices and returns a CurveInput.
//
// A nil slice, empty name or zero convention is reported as market.ErrNullArgument.
// An empty node set or slices of different lengths are market.ErrInvalidArgument.
func New(
	name market.CurveName,
	tenors []market.Tenor,
	instrumentTypes []market.InstrumentType,
	parRates []decimal.Decimal,
	convention market.Convention,
) (*CurveInput, error) {
	switch {
	case name == "":
		return nil, market.NullArgument("name")
	case tenors == nil:
		return nil, market.NullArgument("tenors")
	case instrumentTypes == nil:
		return nil, market.NullArgument("instrumentTypes")
	case parRates == nil:
		return nil, market.NullArgument("parRates")
	case convention.IsZero():
		return nil, market.NullArgument("convention")
	}
	if len(tenors) == 0 {
		return nil, market.InvalidArgument("Cannot have zero points")
	}
	if len(tenors) != len(instrumentTypes) || len(tenors) != len(parRates) {
		return nil, market.InvalidArgument("Points do not line up")
	}

	return &CurveInput{
		name:            name,
		tenors:          slices.Clone(tenors),
		instrumentTypes: slices.Clone(instrumentTypes),
		parRates:        slices.Clone(parRates),
		convention:      convention,
	}, nil
}

// FromNodes builds a CurveInput from node triples.
func FromNodes(name market.CurveName, nodes []Node, convention market.Convention) (*CurveInput, error) {
	if nodes == nil {
		return nil, market.NullArgument("nodes")
	}
	tenors := make([]market.Tenor, len(nodes))
	types := make([]market.InstrumentType, len(nodes))
	rates := make([]decimal.Decimal, len(nodes))
	for i, n := range nodes {
		tenors[i] = n.Tenor
		types[i] = n.InstrumentType
		rates[i] = n.ParRate
	}
	return New(name, tenors, types, rates, convention)
}

// Name returns the curve name.
func (c *CurveInput) Name() market.CurveName { return c.name }

// Convention returns the calibration convention.
func (c *CurveInput) Convention() market.Convention { return c.convention }

// NumberOfPoints returns the number of nodes.
func (c *CurveInput) NumberOfPoints() int { return len(c.parRates) }

// Tenors returns a copy of the node tenors.
func (c *CurveInput) Tenors() []market.Tenor { return slices.Clone(c.tenors) }

// InstrumentTypes returns a copy of the node instrument types.
func (c *CurveInput) InstrumentTypes() []market.InstrumentType {
	return slices.Clone(c.instrumentTypes)
}

// ParRates returns a copy of the node par rates.
func (c *CurveInput) ParRates() []decimal.Decimal { return slices.Clone(c.parRates) }

// Node returns the i-th node.
func (c *CurveInput) Node(i int) (Node, error) {
	if err := c.checkIndex(i); err != nil {
		return Node{}, err
	}
	return Node{Tenor: c.tenors[i], InstrumentType: c.instrumentTypes[i], ParRate: c.parRates[i]}, nil
}

// Nodes returns all nodes in order.
func (c *CurveInput) Nodes() []Node {
	out := make([]Node, len(c.parRates))
	for i := range out {
		out[i] = Node{Tenor: c.tenors[i], InstrumentType: c.instrumentTypes[i], ParRate: c.parRates[i]}
	}
	return out
}

// ParallelShift returns a copy with amount added to every par rate.
//
// The amount is in the same units as the rates; 1bp on decimal rates is 0.0001.
func (c *CurveInput) ParallelShift(amount decimal.Decimal) *CurveInput {
	rates := make([]decimal.Decimal, len(c.parRates))
	for i, r := range c.parRates {
		rates[i] = r.Add(amount)
	}
	return c.withRates(rates)
}

// BucketedShift returns a copy with amount added to the par rate at index only.
//
// Unlike a raw slice access, an out-of-range index is reported as
// market.ErrInvalidArgument rather than a panic.
func (c *CurveInput) BucketedShift(index int, amount decimal.Decimal) (*CurveInput, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	rates := slices.Clone(c.parRates)
	rates[index] = rates[index].Add(amount)
	return c.withRates(rates), nil
}

// withRates takes ownership of rates; the remaining slices are copied.
func (c *CurveInput) withRates(rates []decimal.Decimal) *CurveInput {
	return &CurveInput{
		name:            c.name,
		tenors:          slices.Clone(c.tenors),
		instrumentTypes: slices.Clone(c.instrumentTypes),
		parRates:        rates,
		convention:      c.convention,
	}
}

func (c *CurveInput) checkIndex(i int) error {
	if i < 0 || i >= len(c.parRates) {
		return market.InvalidArgument(fmt.Sprintf("Index out of range: %d (points %d)", i, len(c.parRates)))
	}
	return nil
}

// Equal reports whether both inputs carry the same name, nodes and convention.
// Par rates compare by numeric value, so 0.010 equals 0.01.
func (c *CurveInput) Equal(other *CurveInput) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name &&
		c.convention == other.convention &&
		slices.Equal(c.tenors, other.tenors) &&
		slices.Equal(c.instrumentTypes, other.instrumentTypes) &&
		slices.EqualFunc(c.parRates, other.parRates, decimal.Decimal.Equal)
}

// Hash returns a hash consistent with Equal.
func (c *CurveInput) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%v\x00", c.name, c.convention)
	for i := range c.parRates {
		// String drops trailing zeros, so numerically equal rates hash alike.
		fmt.Fprintf(h, "%d:%d:%s:%s\x00", c.tenors[i].Months, c.tenors[i].Days, c.instrumentTypes[i], c.parRates[i].String())
	}
	return h.Sum64()
}

func (c *CurveInput) String() string {
	nodes := make([]string, len(c.parRates))
	for i, n := range c.Nodes() {
		nodes[i] = n.String()
	}
	return fmt.Sprintf("ParRateCurveInput{name=%s, nodes=[%s], convention=%s}",
		c.name, strings.Join(nodes, ", "), c.convention)
}
