// Package signal models continuous-time signals as immutable, evaluable
// values.
//
// A Signal carries an evaluation rule, a display name, a human readable
// formula and a frozen record of the parameters it was built with. The
// algebra (Add, Multiply, Shift, Scale, TimeScale) never mutates its
// operands; every operation returns a new Signal whose rule closes over
// copies of the operands and of the transform argument.
package signal

import (
	"gonum.org/v1/gonum/mat"
)

// Func is the evaluation rule of a signal at a single instant.
type Func func(t float64) float64

// Signal is an immutable evaluable function of time.
type Signal struct {
	u       Func
	name    string
	formula string
	params  Params
}

// New returns a Signal with evaluation rule u. params is copied, so later
// changes to the caller's map are not observed.
func New(name, formula string, params Params, u Func) Signal {
	return Signal{
		u:       u,
		name:    name,
		formula: formula,
		params:  params.Clone(),
	}
}

// Name returns the display name
func (s Signal) Name() string { return s.name }

// Formula returns the human readable formula
func (s Signal) Formula() string { return s.formula }

// Params returns a copy of the construction parameters.
func (s Signal) Params() Params { return s.params.Clone() }

// String implements fmt.Stringer.
func (s Signal) String() string { return s.name + ": " + s.formula }

// Value evaluates the signal at time t. A zero Signal evaluates to 0.
func (s Signal) Value(t float64) float64 {
	if s.u == nil {
		return 0
	}
	return s.u(t)
}

// Evaluate applies the signal elementwise to t and returns a new slice of
// the same length.
func (s Signal) Evaluate(t []float64) []float64 {
	res := make([]float64, len(t))
	for i, ti := range t {
		res[i] = s.Value(ti)
	}
	return res
}

// EvaluateVec is Evaluate for gonum vectors.
func (s Signal) EvaluateVec(t mat.Vector) *mat.VecDense {
	n := t.Len()
	res := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		res.SetVec(i, s.Value(t.AtVec(i)))
	}
	return res
}

// Params is a named parameter record. Signals hold their own copy.
type Params map[string]float64

// Clone returns an independent copy. Cloning nil yields an empty record.
func (p Params) Clone() Params {
	res := make(Params, len(p))
	for k, v := range p {
		res[k] = v
	}
	return res
}

// Get returns the value for key or def when absent.
func (p Params) Get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}
