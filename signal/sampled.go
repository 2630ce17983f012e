package signal

import (
	"gonum.org/v1/gonum/mat"

	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/timeaxis"
)

// Sampled pairs a time axis with the amplitudes observed on it. Both have
// the same length.
type Sampled struct {
	Axis timeaxis.Axis
	Y    []float64
}

// Sample evaluates s over every point of axis.
func (s Signal) Sample(axis timeaxis.Axis) Sampled {
	return Sampled{Axis: axis, Y: s.Evaluate(axis.Values())}
}

// NewSampled pairs axis with y, rejecting a length mismatch. y is copied.
func NewSampled(axis timeaxis.Axis, y []float64) (Sampled, error) {
	if axis.Len() != len(y) {
		return Sampled{}, errors.Wrapf(errors.ErrShapeMismatch,
			"axis has %d samples, amplitudes have %d", axis.Len(), len(y))
	}
	res := make([]float64, len(y))
	copy(res, y)
	return Sampled{Axis: axis, Y: res}, nil
}

// Len returns the number of samples
func (s Sampled) Len() int { return len(s.Y) }

// T returns a copy of the time samples.
func (s Sampled) T() []float64 { return s.Axis.Values() }

// Vector returns the amplitudes as a gonum vector sharing no memory with s.
func (s Sampled) Vector() *mat.VecDense {
	res := make([]float64, len(s.Y))
	copy(res, s.Y)
	return mat.NewVecDense(len(res), res)
}
