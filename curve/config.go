package curve

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meenmo/curvekit/market"
)

// InterpolatedConfig is the recipe a curve builder follows to calibrate an
// interpolated curve: which nodes to solve for and how to interpolate and
// extrapolate between them.
//
// Values are immutable and built with InterpolatedConfigBuilder.
type InterpolatedConfig struct {
	name              market.CurveName
	xValueType        market.ValueType
	yValueType        market.ValueType
	dayCount          market.DayCount
	nodes             []Node
	interpolator      Interpolator
	leftExtrapolator  Extrapolator
	rightExtrapolator Extrapolator
}

func (c *InterpolatedConfig) Name() market.CurveName       { return c.name }
func (c *InterpolatedConfig) XValueType() market.ValueType { return c.xValueType }
func (c *InterpolatedConfig) YValueType() market.ValueType { return c.yValueType }

// DayCount returns the x-axis day count, if the configuration has one.
func (c *InterpolatedConfig) DayCount() (market.DayCount, bool) {
	return c.dayCount, c.dayCount != ""
}

// Nodes returns a copy of the node specifications in order.
func (c *InterpolatedConfig) Nodes() []Node { return slices.Clone(c.nodes) }

func (c *InterpolatedConfig) Interpolator() Interpolator      { return c.interpolator }
func (c *InterpolatedConfig) LeftExtrapolator() Extrapolator  { return c.leftExtrapolator }
func (c *InterpolatedConfig) RightExtrapolator() Extrapolator { return c.rightExtrapolator }

// Metadata describes the curve this configuration calibrates, with one
// parameter per node in node order.
func (c *InterpolatedConfig) Metadata(valuationDate civil.Date) Metadata {
	params := make([]ParameterMetadata, len(c.nodes))
	for i, n := range c.nodes {
		params[i] = n.Metadata(valuationDate)
	}
	return Metadata{
		Name:       c.name,
		XValueType: c.xValueType,
		YValueType: c.yValueType,
		DayCount:   c.dayCount,
		Parameters: params,
	}
}

// Equal reports whether both configurations are field-for-field equal.
// Nodes are compared with nodesEqual.
func (c *InterpolatedConfig) Equal(other *InterpolatedConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name &&
		c.xValueType == other.xValueType &&
		c.yValueType == other.yValueType &&
		c.dayCount == other.dayCount &&
		c.interpolator == other.interpolator &&
		c.leftExtrapolator == other.leftExtrapolator &&
		c.rightExtrapolator == other.rightExtrapolator &&
		slices.EqualFunc(c.nodes, other.nodes, nodesEqual)
}

// nodesEqual prefers a node's own Equal method. Otherwise it uses
// reflect.DeepEqual, which unlike == does not panic on nodes holding slices or maps.
func nodesEqual(a, b Node) bool {
	if eq, ok := a.(interface{ Equal(Node) bool }); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

func (c *InterpolatedConfig) String() string {
	nodes := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		nodes[i] = fmt.Sprint(n)
	}
	dc := "none"
	if c.dayCount != "" {
		dc = string(c.dayCount)
	}
	return fmt.Sprintf(
		"InterpolatedCurveConfig{name=%s, xValueType=%s, yValueType=%s, dayCount=%s, nodes=[%s], interpolator=%s, extrapolatorLeft=%s, extrapolatorRight=%s}",
		c.name, c.xValueType, c.yValueType, dc, strings.Join(nodes, ", "),
		c.interpolator, c.leftExtrapolator, c.rightExtrapolator)
}

// ToBuilder returns a builder seeded with this configuration.
func (c *InterpolatedConfig) ToBuilder() *InterpolatedConfigBuilder {
	return &InterpolatedConfigBuilder{
		name:              c.name,
		xValueType:        c.xValueType,
		yValueType:        c.yValueType,
		dayCount:          c.dayCount,
		nodes:             slices.Clone(c.nodes),
		interpolator:      c.interpolator,
		leftExtrapolator:  c.leftExtrapolator,
		rightExtrapolator: c.rightExtrapolator,
	}
}

// InterpolatedConfigBuilder collects the fields of an InterpolatedConfig.
//
// Name, Interpolator, LeftExtrapolator, RightExtrapolator and Nodes are
// required. Value types default to market.Unknown; DayCount is optional.
type InterpolatedConfigBuilder struct {
	name              market.CurveName
	xValueType        market.ValueType
	yValueType        market.ValueType
	dayCount          market.DayCount
	nodes             []Node
	interpolator      Interpolator
	leftExtrapolator  Extrapolator
	rightExtrapolator Extrapolator
}

// NewInterpolatedConfigBuilder returns an empty builder.
func NewInterpolatedConfigBuilder() *InterpolatedConfigBuilder {
	return &InterpolatedConfigBuilder{}
}

func (b *InterpolatedConfigBuilder) Name(name market.CurveName) *InterpolatedConfigBuilder {
	b.name = name
	return b
}

func (b *InterpolatedConfigBuilder) XValueType(v market.ValueType) *InterpolatedConfigBuilder {
	b.xValueType = v
	return b
}

func (b *InterpolatedConfigBuilder) YValueType(v market.ValueType) *InterpolatedConfigBuilder {
	b.yValueType = v
	return b
}

func (b *InterpolatedConfigBuilder) DayCount(dc market.DayCount) *InterpolatedConfigBuilder {
	b.dayCount = dc
	return b
}

// Nodes sets the node specifications. The slice is copied.
func (b *InterpolatedConfigBuilder) Nodes(nodes ...Node) *InterpolatedConfigBuilder {
	b.nodes = slices.Clone(nodes)
	return b
}

func (b *InterpolatedConfigBuilder) Interpolator(i Interpolator) *InterpolatedConfigBuilder {
	b.interpolator = i
	return b
}

func (b *InterpolatedConfigBuilder) LeftExtrapolator(e Extrapolator) *InterpolatedConfigBuilder {
	b.leftExtrapolator = e
	return b
}

func (b *InterpolatedConfigBuilder) RightExtrapolator(e Extrapolator) *InterpolatedConfigBuilder {
	b.rightExtrapolator = e
	return b
}

// Build validates the required fields and returns the configuration.
// The builder may be reused afterwards without affecting the result.
func (b *InterpolatedConfigBuilder) Build() (*InterpolatedConfig, error) {
	switch {
	case b.name == "":
		return nil, market.NullArgument("name")
	case b.interpolator == "":
		return nil, market.NullArgument("interpolator")
	case b.leftExtrapolator == "":
		return nil, market.NullArgument("extrapolatorLeft")
	case b.rightExtrapolator == "":
		return nil, market.NullArgument("extrapolatorRight")
	case b.nodes == nil:
		return nil, market.NullArgument("nodes")
	}
	for i, n := range b.nodes {
		if n == nil {
			return nil, market.NullArgument(fmt.Sprintf("nodes[%d]", i))
		}
	}

	return &InterpolatedConfig{
		name:              b.name,
		xValueType:        b.xValueType.OrUnknown(),
		yValueType:        b.yValueType.OrUnknown(),
		dayCount:          b.dayCount,
		nodes:             slices.Clone(b.nodes),
		interpolator:      b.interpolator,
		leftExtrapolator:  b.leftExtrapolator,
		rightExtrapolator: b.rightExtrapolator,
	}, nil
}
