package signal

import (
	"math"

	"github.com/aroproduction/commviz/internal/errors"
)

// DefaultImpulseTolerance is the distance from t=0 within which the unit
// impulse evaluates to 1.
const DefaultImpulseTolerance = 1e-8

// UnitImpulse is 1 where |t| <= tolerance, else 0. A negative tolerance is
// treated as zero.
func UnitImpulse(tolerance float64) Signal {
	tol := math.Max(tolerance, 0)
	return New("Unit Impulse", "δ(t)", Params{"tolerance": tol}, func(t float64) float64 {
		if math.Abs(t) <= tol {
			return 1
		}
		return 0
	})
}

// UnitStep is constant for t >= 0, else 0.
func UnitStep(constant float64) Signal {
	formula := "u(t)"
	if constant != 1 {
		formula = formatNumber(constant) + "·u(t)"
	}
	return New("Unit Step", formula, Params{"constant": constant}, func(t float64) float64 {
		if t >= 0 {
			return constant
		}
		return 0
	})
}

// Ramp is t for t >= 0, else 0.
func Ramp() Signal {
	return New("Ramp", "t·u(t)", nil, func(t float64) float64 {
		if t >= 0 {
			return t
		}
		return 0
	})
}

// Exponential is e^(a·t) for t >= 0, else 0.
func Exponential(a float64) Signal {
	return New("Exponential", "e^("+formatNumber(a)+"t)·u(t)", Params{"a": a}, func(t float64) float64 {
		if t >= 0 {
			return math.Exp(a * t)
		}
		return 0
	})
}

// Sinusoid is amplitude·sin(2π·frequency·t + phase).
func Sinusoid(amplitude, frequency, phase float64) Signal {
	formula := formatNumber(amplitude) + "·sin(2π" + formatNumber(frequency) + "t+" + formatNumber(phase) + ")"
	params := Params{"amplitude": amplitude, "frequency": frequency, "phase": phase}
	return New("Sinusoid", formula, params, func(t float64) float64 {
		return amplitude * math.Sin(2*math.Pi*frequency*t+phase)
	})
}

// Sinc is amplitude·sin(πt)/(πt), with the limiting value at t=0 and exact
// zeros at the other integers.
func Sinc(amplitude float64) Signal {
	return New("Sinc", formatNumber(amplitude)+"·sin(πt)/(πt)", Params{"amplitude": amplitude}, func(t float64) float64 {
		return amplitude * sinc(t)
	})
}

func sinc(t float64) float64 {
	if t == 0 {
		return 1
	}
	if t == math.Trunc(t) && !math.IsInf(t, 0) {
		return 0
	}
	x := math.Pi * t
	return math.Sin(x) / x
}

// Signum is the sign of t, 0 at t=0.
func Signum() Signal {
	return New("Signum", "sgn(t)", nil, func(t float64) float64 {
		switch {
		case t > 0:
			return 1
		case t < 0:
			return -1
		default:
			// keeps NaN as NaN
			return t
		}
	})
}

// Rectangular is amplitude on [start, end], else 0.
func Rectangular(start, end, amplitude float64) Signal {
	formula := formatNumber(amplitude) + "·rect(t), [" + formatNumber(start) + "," + formatNumber(end) + "]"
	params := Params{"start": start, "end": end, "amplitude": amplitude}
	return New("Rectangular Pulse", formula, params, func(t float64) float64 {
		if t >= start && t <= end {
			return amplitude
		}
		return 0
	})
}

// Triangular rises linearly from 0 at start to amplitude at the midpoint and
// falls back to 0 at end; it is 0 outside. It fails with ErrDivisionByZero
// when end == start.
func Triangular(start, end, amplitude float64) (Signal, error) {
	width := end - start
	if width == 0 {
		return Signal{}, errors.WithHint(
			errors.Wrapf(errors.ErrDivisionByZero, "triangular wave with start = end = %g", start),
			"choose an end different from the start")
	}
	formula := formatNumber(amplitude) + "·tri(t), [" + formatNumber(start) + "," + formatNumber(end) + "]"
	params := Params{"start": start, "end": end, "amplitude": amplitude}
	return New("Triangular", formula, params, func(t float64) float64 {
		x := 1 - math.Abs(2*(t-start)/width-1)
		if x < 0 {
			x = 0
		}
		return amplitude * x
	}), nil
}
