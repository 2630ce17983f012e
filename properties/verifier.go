package properties

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/system"
)

// Selection toggles the checks Run performs and carries their arguments.
// Arguments are used as given; NewSelection fills in the defaults.
type Selection struct {
	Linearity      bool
	TimeInvariance bool
	Causality      bool
	Stability      bool

	// Second linearity input; nil means 0.5·x
	X2 []float64
	// Linearity coefficients
	A, B float64
	// Circular shift for time invariance
	Shift int
}

// DefaultShift is the time-invariance shift NewSelection uses.
const DefaultShift = 10

// NewSelection enables the given properties with a = b = 1 and
// DefaultShift.
func NewSelection(props ...Property) Selection {
	sel := Selection{A: 1, B: 1, Shift: DefaultShift}
	for _, p := range props {
		switch p {
		case Linearity:
			sel.Linearity = true
		case TimeInvariance:
			sel.TimeInvariance = true
		case Causality:
			sel.Causality = true
		case Stability:
			sel.Stability = true
		}
	}
	return sel
}

// AllChecks selects every property with default arguments.
func AllChecks() Selection {
	return NewSelection(Linearity, TimeInvariance, Causality, Stability)
}

// Verifier runs a selection of checks against one system.
type Verifier struct {
	StabilityBound float64
	Tolerance      float64
}

// NewVerifier returns a Verifier; a non-positive bound falls back to
// DefaultStabilityBound.
func NewVerifier(bound, tolerance float64) *Verifier {
	if !(bound > 0) {
		bound = DefaultStabilityBound
	}
	return &Verifier{StabilityBound: bound, Tolerance: tolerance}
}

// Run performs the selected checks on x concurrently and returns their
// results in Property order. The checks only read x, and each hands s its
// own copy of the input, but s may be applied from several goroutines at
// once and must be safe for concurrent use.
func (v *Verifier) Run(ctx context.Context, x []float64, s system.System, sel Selection) ([]Result, error) {
	if err := nonEmpty(x); err != nil {
		return nil, err
	}

	type check struct {
		enabled bool
		run     func() (Result, error)
	}
	x2 := sel.X2
	if x2 == nil {
		x2 = floats.ScaleTo(make([]float64, len(x)), 0.5, x)
	}
	checks := []check{
		{sel.Linearity, func() (Result, error) { return CheckLinearity(x, x2, s, sel.A, sel.B) }},
		{sel.TimeInvariance, func() (Result, error) { return CheckTimeInvariance(x, s, sel.Shift) }},
		{sel.Causality, func() (Result, error) { return CheckCausality(x, s) }},
		{sel.Stability, func() (Result, error) { return CheckStability(x, s, v.StabilityBound) }},
	}

	results := make([]Result, len(checks))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range checks {
		if !c.enabled {
			continue
		}
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.run()
			if err != nil {
				return errors.Wrapf(err, "%s check", Property(i))
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(checks))
	for i, c := range checks {
		if c.enabled {
			out = append(out, results[i])
		}
	}
	return out, nil
}
