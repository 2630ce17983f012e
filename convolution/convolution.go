// Package convolution approximates continuous-time convolution of sampled
// signals with finite impulse-response kernels.
//
// The output has the length of the input ("same" mode): the full discrete
// convolution is cropped starting at (L-1)/2 for a kernel of length L and
// scaled by the sample spacing dt,
//
//	y[n] ≈ dt · Σ_k x[k]·h[n+(L-1)/2-k]
//
// so that the sum approximates the convolution integral. With an odd-length
// delta kernel centered at L/2 the output is x·dt; with an even length it is
// x·dt delayed by one sample.
package convolution

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/aroproduction/commviz/internal/errors"
)

// Method selects how the sum is evaluated.
type Method string

const (
	// Direct evaluates the sum term by term, O(N·L).
	Direct Method = "direct"
	// FFT multiplies spectra, O((N+L) log(N+L)). Results match Direct up to
	// rounding.
	FFT Method = "fft"
	// Auto picks FFT when the full convolution is longer than the engine's
	// threshold.
	Auto Method = "auto"
)

// DefaultFFTThreshold is the full convolution length above which Auto
// switches to FFT.
const DefaultFFTThreshold = 4096

// Engine convolves with a fixed method.
type Engine struct {
	Method       Method
	FFTThreshold int
}

// NewEngine returns an Engine for method; a non-positive threshold falls
// back to DefaultFFTThreshold.
func NewEngine(method Method, threshold int) (*Engine, error) {
	switch method {
	case Direct, FFT, Auto:
	case "":
		method = Direct
	default:
		return nil, errors.Wrapf(errors.ErrInvalidParameter, "convolution method %q", method)
	}
	if threshold <= 0 {
		threshold = DefaultFFTThreshold
	}
	return &Engine{Method: method, FFTThreshold: threshold}, nil
}

// Convolve returns the same-length convolution of x with h scaled by dt,
// evaluated directly.
func Convolve(x, h []float64, dt float64) ([]float64, error) {
	e := Engine{Method: Direct}
	return e.Convolve(x, h, dt)
}

// Convolve returns the same-length convolution of x with h scaled by dt.
func (e *Engine) Convolve(x, h []float64, dt float64) ([]float64, error) {
	if len(x) == 0 || len(h) == 0 {
		return nil, errors.Wrapf(errors.ErrShapeMismatch, "input has %d samples, kernel %d", len(x), len(h))
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, errors.Wrapf(errors.ErrInvalidRange, "sample spacing %g must be positive", dt)
	}

	var y []float64
	switch e.method(len(x) + len(h) - 1) {
	case FFT:
		y = sameFFT(x, h)
	default:
		y = sameDirect(x, h)
	}
	floats.Scale(dt, y)
	return y, nil
}

func (e *Engine) method(fullLength int) Method {
	if e.Method != Auto {
		return e.Method
	}
	threshold := e.FFTThreshold
	if threshold <= 0 {
		threshold = DefaultFFTThreshold
	}
	if fullLength > threshold {
		return FFT
	}
	return Direct
}

// sameDirect computes y[n] = Σ_k x[k]·h[n+offset-k] for n in [0, len(x)).
func sameDirect(x, h []float64) []float64 {
	n, l := len(x), len(h)
	offset := (l - 1) / 2
	y := make([]float64, n)
	for i := range y {
		m := i + offset
		lo := m - l + 1
		if lo < 0 {
			lo = 0
		}
		hi := m
		if hi > n-1 {
			hi = n - 1
		}
		var sum float64
		for k := lo; k <= hi; k++ {
			sum += x[k] * h[m-k]
		}
		y[i] = sum
	}
	return y
}

// sameFFT crops the full convolution computed by zero padded real FFTs.
func sameFFT(x, h []float64) []float64 {
	n, l := len(x), len(h)
	full := n + l - 1
	size := 1
	for size < full {
		size <<= 1
	}

	fft := fourier.NewFFT(size)
	xp := make([]float64, size)
	copy(xp, x)
	hp := make([]float64, size)
	copy(hp, h)

	xc := fft.Coefficients(nil, xp)
	hc := fft.Coefficients(nil, hp)
	for i := range xc {
		xc[i] *= hc[i]
	}
	seq := fft.Sequence(nil, xc)

	// gonum's inverse transform is unnormalized
	offset := (l - 1) / 2
	y := make([]float64, n)
	scale := 1 / float64(size)
	for i := range y {
		y[i] = seq[i+offset] * scale
	}
	return y
}
