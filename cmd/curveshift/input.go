package main

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/curvekit/curve"
	"github.com/meenmo/curvekit/market"
	"github.com/meenmo/curvekit/parrate"
)

// Request is the YAML (or JSON) input document.
type Request struct {
	ValuationDate string       `yaml:"valuation_date"`
	Config        *yaml.Node   `yaml:"config"`
	Curves        []CurveInput `yaml:"curves"`
}

// CurveInput describes one curve: its par quotes plus its calibration recipe.
type CurveInput struct {
	TaskID            string      `yaml:"task_id"`
	Name              string      `yaml:"name"`
	Convention        string      `yaml:"convention"`
	Nodes             []NodeQuote `yaml:"nodes"`
	XValueType        string      `yaml:"x_value_type"`
	YValueType        string      `yaml:"y_value_type"`
	DayCount          string      `yaml:"day_count"`
	Interpolator      string      `yaml:"interpolator"`
	ExtrapolatorLeft  string      `yaml:"extrapolator_left"`
	ExtrapolatorRight string      `yaml:"extrapolator_right"`
}

// NodeQuote is one quoted node. Rate is a decimal string, e.g. "0.0125".
type NodeQuote struct {
	Tenor      string `yaml:"tenor"`
	Instrument string `yaml:"instrument"`
	Rate       string `yaml:"rate"`
}

func parseRequest(raw []byte) (*Request, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	var req Request
	if err := yaml.Unmarshal(trimmed, &req); err != nil {
		return nil, err
	}
	if req.ValuationDate == "" {
		return nil, fmt.Errorf("valuation_date is required")
	}
	if len(req.Curves) == 0 {
		return nil, fmt.Errorf("curves is required")
	}
	return &req, nil
}

// build turns the document form of a curve into the par rate input and the
// interpolated curve configuration.
func (c CurveInput) build() (*parrate.CurveInput, *curve.InterpolatedConfig, error) {
	convention, ok := market.LookupConvention(c.Convention)
	if !ok {
		return nil, nil, fmt.Errorf("unknown convention: %s", c.Convention)
	}

	nodes := make([]parrate.Node, 0, len(c.Nodes))
	specs := make([]curve.Node, 0, len(c.Nodes))
	for i, q := range c.Nodes {
		tenor, err := market.ParseTenor(q.Tenor)
		if err != nil {
			return nil, nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		it, err := market.ParseInstrumentType(q.Instrument)
		if err != nil {
			return nil, nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		rate, err := decimal.NewFromString(q.Rate)
		if err != nil {
			return nil, nil, fmt.Errorf("nodes[%d]: invalid rate %q: %w", i, q.Rate, err)
		}
		nodes = append(nodes, parrate.Node{Tenor: tenor, InstrumentType: it, ParRate: rate})
		specs = append(specs, curve.NewTenorNode(tenor, it, convention))
	}

	input, err := parrate.FromNodes(market.CurveName(c.Name), nodes, convention)
	if err != nil {
		return nil, nil, err
	}

	b := curve.NewInterpolatedConfigBuilder().
		Name(market.CurveName(c.Name)).
		Nodes(specs...)
	if err := c.applyStrategies(b); err != nil {
		return nil, nil, err
	}
	cfg, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return input, cfg, nil
}

// applyStrategies parses the axis, day count and strategy names onto b.
// Empty strategy names are left unset so Build reports them as missing.
func (c CurveInput) applyStrategies(b *curve.InterpolatedConfigBuilder) error {
	x, err := market.ParseValueType(c.XValueType)
	if err != nil {
		return fmt.Errorf("x_value_type: %w", err)
	}
	y, err := market.ParseValueType(c.YValueType)
	if err != nil {
		return fmt.Errorf("y_value_type: %w", err)
	}
	b.XValueType(x).YValueType(y)

	if c.DayCount != "" {
		dc, err := market.ParseDayCount(c.DayCount)
		if err != nil {
			return fmt.Errorf("day_count: %w", err)
		}
		b.DayCount(dc)
	}
	if c.Interpolator != "" {
		i, err := curve.ParseInterpolator(c.Interpolator)
		if err != nil {
			return fmt.Errorf("interpolator: %w", err)
		}
		b.Interpolator(i)
	}
	if c.ExtrapolatorLeft != "" {
		e, err := curve.ParseExtrapolator(c.ExtrapolatorLeft)
		if err != nil {
			return fmt.Errorf("extrapolator_left: %w", err)
		}
		b.LeftExtrapolator(e)
	}
	if c.ExtrapolatorRight != "" {
		e, err := curve.ParseExtrapolator(c.ExtrapolatorRight)
		if err != nil {
			return fmt.Errorf("extrapolator_right: %w", err)
		}
		b.RightExtrapolator(e)
	}
	return nil
}
