// Package gonumExtensions holds small vector helpers missing from gonum's
// floats and mat packages.
package gonumExtensions

import "math"

// Roll returns a copy of x circularly shifted by shift positions: element i
// moves to (i+shift) mod len(x). Negative shifts roll to the left.
func Roll(x []float64, shift int) []float64 {
	n := len(x)
	res := make([]float64, n)
	if n == 0 {
		return res
	}
	k := ((shift % n) + n) % n
	copy(res[k:], x[:n-k])
	copy(res[:k], x[n-k:])
	return res
}

// NANORINF reports whether any element is NaN or ±Inf.
func NANORINF(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// MaxAbs returns the largest magnitude in x, NaN if any element is NaN and 0
// for an empty slice.
func MaxAbs(x []float64) float64 {
	res := 0.
	for _, v := range x {
		if math.IsNaN(v) {
			return math.NaN()
		}
		if a := math.Abs(v); a > res {
			res = a
		}
	}
	return res
}
