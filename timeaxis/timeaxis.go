// Package timeaxis builds the ordered sample grids every signal is
// evaluated over.
//
// Two construction policies are supported: a fixed sample count spread
// uniformly between the bounds (both included), and a fixed spacing dt
// stepping from t_min up to t_max+dt (exclusive). The spacing policy follows
// the half-open arange convention, so floating rounding can leave one sample
// past t_max; callers that need exact end points use a count.
package timeaxis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/aroproduction/commviz/internal/errors"
)

// Axis is an immutable, strictly increasing sequence of time samples.
type Axis struct {
	t []float64
}

// Len returns the number of samples
func (a Axis) Len() int { return len(a.t) }

// At returns sample i.
func (a Axis) At(i int) float64 { return a.t[i] }

// Start returns the first sample.
func (a Axis) Start() float64 { return a.t[0] }

// End returns the last sample.
func (a Axis) End() float64 { return a.t[len(a.t)-1] }

// Dt returns the spacing between the first two samples.
func (a Axis) Dt() float64 {
	if len(a.t) < 2 {
		return 0
	}
	return a.t[1] - a.t[0]
}

// Values returns a copy of the samples.
func (a Axis) Values() []float64 {
	res := make([]float64, len(a.t))
	copy(res, a.t)
	return res
}

// Vector returns the samples as a gonum vector.
func (a Axis) Vector() *mat.VecDense {
	return mat.NewVecDense(len(a.t), a.Values())
}

// FromValues wraps an existing time vector. The values must be strictly
// increasing.
func FromValues(t []float64) (Axis, error) {
	if len(t) == 0 {
		return Axis{}, errors.Wrap(errors.ErrInvalidRange, "empty time vector")
	}
	if err := checkGrid(t); err != nil {
		return Axis{}, err
	}
	res := make([]float64, len(t))
	copy(res, t)
	return Axis{res}, nil
}

// checkGrid requires finite, strictly increasing samples.
func checkGrid(t []float64) error {
	for i, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(errors.ErrInvalidRange, "time vector not finite at index %d", i)
		}
		if i > 0 && !(v > t[i-1]) {
			return errors.WithHint(
				errors.Wrapf(errors.ErrInvalidRange, "time vector not strictly increasing at index %d", i),
				"the step is below the floating point resolution of the bounds; widen the interval or use fewer samples")
		}
	}
	return nil
}

// Mode selects how an Axis is sampled. The zero Mode lets the resolution
// policy choose a sample count.
type Mode struct {
	kind    modeKind
	count   int
	spacing float64
}

type modeKind int

const (
	modeAuto modeKind = iota
	modeCount
	modeSpacing
)

// Count samples the interval with n points, both bounds included.
func Count(n int) Mode { return Mode{kind: modeCount, count: n} }

// Spacing samples the interval every dt.
func Spacing(dt float64) Mode { return Mode{kind: modeSpacing, spacing: dt} }

// Auto lets the resolution policy pick the sample count.
func Auto() Mode { return Mode{} }

// Builder constructs axes under a resolution policy.
type Builder struct {
	Resolution Resolution
}

// NewBuilder returns a Builder using the given policy.
func NewBuilder(r Resolution) *Builder {
	return &Builder{Resolution: r}
}

// Build returns the sample grid over [tMin, tMax].
func (b *Builder) Build(tMin, tMax float64, mode Mode) (Axis, error) {
	if err := checkBounds(tMin, tMax); err != nil {
		return Axis{}, err
	}

	switch mode.kind {
	case modeCount:
		if limit := b.Resolution.Max(); mode.count > limit {
			return Axis{}, errors.Wrapf(errors.ErrInvalidRange, "sample count %d exceeds %d", mode.count, limit)
		}
		return linspace(tMin, tMax, mode.count)
	case modeSpacing:
		return b.arange(tMin, tMax, mode.spacing)
	default:
		return linspace(tMin, tMax, b.Resolution.Samples(tMax-tMin))
	}
}

// Discrete builds the coarse axis used for stem displays:
// min(maxPoints, floor(tMax-tMin)*pointsPerUnit) points, at least two.
func (b *Builder) Discrete(tMin, tMax float64, pointsPerUnit, maxPoints int) (Axis, error) {
	if err := checkBounds(tMin, tMax); err != nil {
		return Axis{}, err
	}
	if pointsPerUnit <= 0 || maxPoints < 2 {
		return Axis{}, errors.Wrapf(errors.ErrInvalidRange,
			"discrete resolution %d points/unit, max %d", pointsPerUnit, maxPoints)
	}
	// float64 until clamped so wide spans cannot overflow int
	n := int(math.Min(float64(maxPoints), math.Floor(tMax-tMin)*float64(pointsPerUnit)))
	if n < 2 {
		n = 2
	}
	return linspace(tMin, tMax, n)
}

// checkBounds requires finite bounds with tMin < tMax and a finite span.
func checkBounds(tMin, tMax float64) error {
	if math.IsNaN(tMin) || math.IsNaN(tMax) || math.IsInf(tMin, 0) || math.IsInf(tMax, 0) {
		return errors.Wrapf(errors.ErrInvalidRange, "t_min=%g t_max=%g must be finite", tMin, tMax)
	}
	if tMin >= tMax {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidRange, "t_min=%g t_max=%g", tMin, tMax),
			"start time must be less than end time")
	}
	if math.IsInf(tMax-tMin, 0) {
		return errors.Wrapf(errors.ErrInvalidRange, "interval [%g, %g] is too wide", tMin, tMax)
	}
	return nil
}

func linspace(tMin, tMax float64, n int) (Axis, error) {
	if n < 2 {
		return Axis{}, errors.Wrapf(errors.ErrInvalidRange, "sample count %d, need at least 2", n)
	}
	t := floats.Span(make([]float64, n), tMin, tMax)
	// pin the end point against accumulated rounding in the step
	t[n-1] = tMax
	if err := checkGrid(t); err != nil {
		return Axis{}, err
	}
	return Axis{t}, nil
}

func (b *Builder) arange(tMin, tMax, dt float64) (Axis, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return Axis{}, errors.Wrapf(errors.ErrInvalidRange, "sample spacing %g must be positive", dt)
	}
	steps := math.Ceil((tMax + dt - tMin) / dt)
	if limit := b.Resolution.Max(); !(steps <= float64(limit)) {
		return Axis{}, errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidRange, "spacing %g over [%g, %g] needs %g samples", dt, tMin, tMax, steps),
			"increase dt; at most %d samples are allowed", limit)
	}
	t := make([]float64, int(steps))
	for i := range t {
		t[i] = tMin + float64(i)*dt
	}
	if err := checkGrid(t); err != nil {
		return Axis{}, err
	}
	return Axis{t}, nil
}
