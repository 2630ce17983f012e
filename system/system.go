// Package system implements stateless discrete systems acting on sampled
// input sequences.
//
// Every System maps an input of length N to a new output of length N, is
// deterministic and keeps no state between calls.
package system

import (
	"gonum.org/v1/gonum/floats"
)

// System transforms an input sequence into an output sequence of the same
// length without mutating the input. Implementations must be safe for
// concurrent use.
type System interface {
	Apply(x []float64) []float64
}

// Func adapts an ordinary function to the System interface. The function
// must not keep state between calls.
type Func func(x []float64) []float64

// Apply calls f(x).
func (f Func) Apply(x []float64) []float64 { return f(x) }

// Gain returns k·x elementwise.
func Gain(x []float64, k float64) []float64 {
	return floats.ScaleTo(make([]float64, len(x)), k, x)
}

// Recursive returns y with y[0] = x[0] and y[n] = x[n] + alpha·x[n-1].
// y[n] only depends on x[0..n].
func Recursive(x []float64, alpha float64) []float64 {
	y := make([]float64, len(x))
	if len(x) == 0 {
		return y
	}
	y[0] = x[0]
	for n := 1; n < len(x); n++ {
		y[n] = x[n] + alpha*x[n-1]
	}
	return y
}

// MemorylessGain is the system y[n] = K·x[n].
type MemorylessGain struct {
	K float64
}

// Apply implements System.
func (g MemorylessGain) Apply(x []float64) []float64 { return Gain(x, g.K) }

// CausalRecursive is the first order system y[n] = x[n] + Alpha·x[n-1].
type CausalRecursive struct {
	Alpha float64
}

// Apply implements System.
func (r CausalRecursive) Apply(x []float64) []float64 { return Recursive(x, r.Alpha) }
