// Package properties verifies the canonical LTI properties of a system
// treated as a black box.
//
// The four checks (linearity, time invariance, causality, stability) are
// independent and stateless. A system failing a property is not an error:
// each check returns the sequences to compare, and Stability a verdict.
// Only malformed inputs (empty vectors, mismatched lengths, a system that
// changes the length of its input) are reported as errors.
package properties

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aroproduction/commviz/gonumExtensions"
	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/system"
)

// DefaultStabilityBound is the magnitude an output must stay strictly below
// to be declared stable.
const DefaultStabilityBound = 1e6

// Property names one LTI check.
type Property int

const (
	Linearity Property = iota
	TimeInvariance
	Causality
	Stability
)

func (p Property) String() string {
	switch p {
	case Linearity:
		return "linearity"
	case TimeInvariance:
		return "time-invariance"
	case Causality:
		return "causality"
	case Stability:
		return "stability"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal diagnostic attached to a Result.
type Warning string

// NumericOverflowWarning marks a stability check whose output reached the
// bound.
const NumericOverflowWarning Warning = "numeric overflow: output reached the stability bound"

// Result is the outcome of one check.
type Result struct {
	Property Property
	// Output of the system under the check's stimulus
	Output []float64
	// Reference to compare Output against; nil for causality and stability
	Expected []float64
	// Stable is the stability verdict; only Stability sets it
	Stable bool
	// Bound used by Stability
	Bound float64
	// MaxAbs is the largest output magnitude
	MaxAbs float64
	// Warning is empty unless the check produced a diagnostic
	Warning Warning
}

// Compare reports how far Output is from Expected. Results without a
// reference compare as a match.
func (r Result) Compare(tol float64) Comparison {
	if r.Expected == nil {
		return Comparison{Match: true}
	}
	return Compare(r.Output, r.Expected, tol)
}

// Comparison summarizes the distance between two sequences.
type Comparison struct {
	MaxDeviation float64
	Match        bool
}

// Compare returns the largest absolute elementwise difference between a and
// b and whether it is within tol. Sequences of different lengths never match.
func Compare(a, b []float64, tol float64) Comparison {
	if len(a) != len(b) {
		return Comparison{MaxDeviation: math.Inf(1)}
	}
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	dev := gonumExtensions.MaxAbs(diff)
	return Comparison{MaxDeviation: dev, Match: dev <= tol}
}

// CheckLinearity computes S(a·x1 + b·x2) and a·S(x1) + b·S(x2).
func CheckLinearity(x1, x2 []float64, s system.System, a, b float64) (Result, error) {
	if err := nonEmpty(x1); err != nil {
		return Result{}, err
	}
	if len(x1) != len(x2) {
		return Result{}, errors.Wrapf(errors.ErrShapeMismatch, "linearity inputs have %d and %d samples", len(x1), len(x2))
	}

	combinedInput := floats.ScaleTo(make([]float64, len(x1)), a, x1)
	floats.AddScaled(combinedInput, b, x2)

	combined, err := apply(s, combinedInput)
	if err != nil {
		return Result{}, err
	}
	y1, err := apply(s, x1)
	if err != nil {
		return Result{}, err
	}
	y2, err := apply(s, x2)
	if err != nil {
		return Result{}, err
	}
	expected := floats.ScaleTo(make([]float64, len(y1)), a, y1)
	floats.AddScaled(expected, b, y2)

	return Result{
		Property: Linearity,
		Output:   combined,
		Expected: expected,
		MaxAbs:   gonumExtensions.MaxAbs(combined),
	}, nil
}

// CheckTimeInvariance computes S(roll(x, shift)) and roll(S(x), shift) with
// circular shifts.
func CheckTimeInvariance(x []float64, s system.System, shift int) (Result, error) {
	if err := nonEmpty(x); err != nil {
		return Result{}, err
	}
	shifted, err := apply(s, gonumExtensions.Roll(x, shift))
	if err != nil {
		return Result{}, err
	}
	y, err := apply(s, x)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Property: TimeInvariance,
		Output:   shifted,
		Expected: gonumExtensions.Roll(y, shift),
		MaxAbs:   gonumExtensions.MaxAbs(shifted),
	}, nil
}

// CheckCausality runs s on x with every sample after the first set to zero.
// The output is a diagnostic to display, not a verdict.
func CheckCausality(x []float64, s system.System) (Result, error) {
	if err := nonEmpty(x); err != nil {
		return Result{}, err
	}
	blocked := make([]float64, len(x))
	blocked[0] = x[0]
	y, err := apply(s, blocked)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Property: Causality,
		Output:   y,
		MaxAbs:   gonumExtensions.MaxAbs(y),
	}, nil
}

// CheckStability runs s on x and declares it stable when every output
// magnitude is strictly below bound. NaN outputs are unstable.
func CheckStability(x []float64, s system.System, bound float64) (Result, error) {
	if err := nonEmpty(x); err != nil {
		return Result{}, err
	}
	if !(bound > 0) {
		return Result{}, errors.Wrapf(errors.ErrInvalidParameter, "stability bound %g must be positive", bound)
	}
	y, err := apply(s, x)
	if err != nil {
		return Result{}, err
	}
	stable := true
	for _, v := range y {
		if !(math.Abs(v) < bound) {
			stable = false
			break
		}
	}
	res := Result{
		Property: Stability,
		Output:   y,
		Stable:   stable,
		Bound:    bound,
		MaxAbs:   gonumExtensions.MaxAbs(y),
	}
	if !stable {
		res.Warning = NumericOverflowWarning
	}
	return res, nil
}

func nonEmpty(x []float64) error {
	if len(x) == 0 {
		return errors.Wrap(errors.ErrShapeMismatch, "empty input")
	}
	return nil
}

// apply runs s on a private copy of x and checks the output length.
func apply(s system.System, x []float64) ([]float64, error) {
	if s == nil {
		return nil, errors.Wrap(errors.ErrInvalidParameter, "nil system")
	}
	in := make([]float64, len(x))
	copy(in, x)
	y := s.Apply(in)
	if len(y) != len(x) {
		return nil, errors.Wrapf(errors.ErrShapeMismatch, "system returned %d samples for %d inputs", len(y), len(x))
	}
	return y, nil
}
