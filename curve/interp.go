package curve

import "github.com/meenmo/curvekit/market"

// Interpolator names the strategy used between calibrated nodes.
// The curve builder resolves it; nothing in this package evaluates it.
type Interpolator string

const (
	Linear             Interpolator = "Linear"
	LogLinear          Interpolator = "LogLinear"
	NaturalCubicSpline Interpolator = "NaturalCubicSpline"
	MonotoneConvex     Interpolator = "MonotoneConvex"
	DoubleQuadratic    Interpolator = "DoubleQuadratic"
)

// Extrapolator names the strategy used beyond the first or last node.
type Extrapolator string

const (
	Flat                  Extrapolator = "Flat"
	LinearExtrapolator    Extrapolator = "Linear"
	LogLinearExtrapolator Extrapolator = "LogLinear"
	Exponential           Extrapolator = "Exponential"
	ProductLinear         Extrapolator = "ProductLinear"
)

// ParseInterpolator maps a strategy name to an Interpolator.
func ParseInterpolator(s string) (Interpolator, error) {
	switch i := Interpolator(s); i {
	case Linear, LogLinear, NaturalCubicSpline, MonotoneConvex, DoubleQuadratic:
		return i, nil
	default:
		return "", market.InvalidArgument("unknown interpolator " + s)
	}
}

// ParseExtrapolator maps a strategy name to an Extrapolator.
func ParseExtrapolator(s string) (Extrapolator, error) {
	switch e := Extrapolator(s); e {
	case Flat, LinearExtrapolator, LogLinearExtrapolator, Exponential, ProductLinear:
		return e, nil
	default:
		return "", market.InvalidArgument("unknown extrapolator " + s)
	}
}
