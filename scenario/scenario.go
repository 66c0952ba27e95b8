// Package scenario turns a par rate curve input into bumped scenarios and
// reprices them for rate sensitivities.
package scenario

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/curvekit/config"
	"github.com/meenmo/curvekit/parrate"
)

// Kind distinguishes parallel from bucketed bumps.
type Kind string

const (
	KindParallel Kind = "PARALLEL"
	KindBucket   Kind = "BUCKET"
)

// Scenario is one bumped copy of a curve input.
type Scenario struct {
	Label string
	Kind  Kind
	Index int // bumped node; -1 for parallel scenarios
	Shift decimal.Decimal
	Input *parrate.CurveInput
}

// Parallel bumps every node of in by shift.
func Parallel(in *parrate.CurveInput, shift decimal.Decimal) Scenario {
	return Scenario{
		Label: "PARALLEL",
		Kind:  KindParallel,
		Index: -1,
		Shift: shift,
		Input: in.ParallelShift(shift),
	}
}

// Buckets bumps each node of in by shift, one scenario per node, in node order.
func Buckets(in *parrate.CurveInput, shift decimal.Decimal) ([]Scenario, error) {
	tenors := in.Tenors()
	out := make([]Scenario, 0, len(tenors))
	for i, tenor := range tenors {
		bumped, err := in.BucketedShift(i, shift)
		if err != nil {
			return nil, err
		}
		out = append(out, Scenario{
			Label: fmt.Sprintf("BUCKET-%s", tenor),
			Kind:  KindBucket,
			Index: i,
			Shift: shift,
			Input: bumped,
		})
	}
	return out, nil
}

// Ladder builds the full risk ladder for cfg: an optional parallel scenario
// followed by every bucket.
func Ladder(in *parrate.CurveInput, cfg config.Config) ([]Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	buckets, err := Buckets(in, cfg.BucketShift)
	if err != nil {
		return nil, err
	}
	if !cfg.IncludeParallel {
		return buckets, nil
	}
	return append([]Scenario{Parallel(in, cfg.ParallelShift)}, buckets...), nil
}

// Repricer values a portfolio off a curve input, typically by bootstrapping it first.
type Repricer func(ctx context.Context, in *parrate.CurveInput) (float64, error)

// Sensitivity is the change in value under one scenario.
type Sensitivity struct {
	Label string
	Kind  Kind
	Index int
	Value float64
	Delta float64
}

// Run reprices base and every scenario with at most limit calls in flight.
// Results are returned in scenario order. The first error cancels the
// remaining repricings.
func Run(ctx context.Context, base *parrate.CurveInput, scenarios []Scenario, reprice Repricer, limit int) ([]Sensitivity, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("scenario: limit must be positive, got %d", limit)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var baseValue float64
	values := make([]float64, len(scenarios))

	g.Go(func() error {
		v, err := reprice(ctx, base)
		if err != nil {
			return fmt.Errorf("reprice base: %w", err)
		}
		baseValue = v
		return nil
	})
	for i, s := range scenarios {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := reprice(ctx, s.Input)
			if err != nil {
				return fmt.Errorf("reprice %s: %w", s.Label, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Sensitivity, len(scenarios))
	for i, s := range scenarios {
		out[i] = Sensitivity{
			Label: s.Label,
			Kind:  s.Kind,
			Index: s.Index,
			Value: values[i],
			Delta: values[i] - baseValue,
		}
	}
	return out, nil
}
