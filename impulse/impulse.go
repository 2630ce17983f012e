// Package impulse generates finite impulse-response kernels.
package impulse

import (
	"math"
	"strings"

	"github.com/aroproduction/commviz/internal/errors"
)

// Kind selects a kernel shape.
type Kind string

const (
	// Delta is 1 at the center tap L/2 and 0 elsewhere.
	Delta Kind = "delta"
	// Exponential decays as alpha^n from n = 0.
	Exponential Kind = "exponential"
	// Ramp rises linearly as n/(L-1) from 0 to 1.
	Ramp Kind = "ramp"
)

// DefaultLength and DefaultAlpha are the kernel defaults.
const (
	DefaultLength = 101
	DefaultAlpha  = 0.5
)

// Kinds returns the available kernel shapes.
func Kinds() []Kind {
	return []Kind{Delta, Exponential, Ramp}
}

// DisplayName returns the label a frontend shows for k.
func (k Kind) DisplayName() string {
	switch k {
	case Delta:
		return "Delta (Linear)"
	case Exponential:
		return "Exponential Decay"
	case Ramp:
		return "Ramp"
	default:
		return string(k)
	}
}

// Params holds kernel parameters. Values are used as given; a zero Alpha
// is the kernel [1, 0, 0, ...].
type Params struct {
	// Decay factor for Exponential
	Alpha float64
}

// DefaultParams returns the parameters with DefaultAlpha.
func DefaultParams() Params {
	return Params{Alpha: DefaultAlpha}
}

// Build returns a kernel of the given kind and length.
func Build(kind Kind, length int, p Params) ([]float64, error) {
	if length <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidParameter, "kernel length %d must be positive", length)
	}
	switch kind {
	case Delta:
		return delta(length), nil
	case Exponential:
		if math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) {
			return nil, errors.Wrapf(errors.ErrInvalidParameter, "decay factor %g", p.Alpha)
		}
		return exponential(length, p.Alpha), nil
	case Ramp:
		return ramp(length), nil
	default:
		names := make([]string, 0, 3)
		for _, k := range Kinds() {
			names = append(names, string(k))
		}
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrUnknownKey, "kernel %q", kind),
			"available kernels: %s", strings.Join(names, ", "))
	}
}

func delta(length int) []float64 {
	h := make([]float64, length)
	h[length/2] = 1
	return h
}

func exponential(length int, alpha float64) []float64 {
	h := make([]float64, length)
	tap := 1.
	for n := range h {
		h[n] = tap
		tap *= alpha
	}
	return h
}

// ramp normalizes by the last index; a single tap kernel is [0].
func ramp(length int) []float64 {
	h := make([]float64, length)
	if length == 1 {
		return h
	}
	last := float64(length - 1)
	for n := range h {
		h[n] = float64(n) / last
	}
	return h
}
