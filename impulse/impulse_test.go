package impulse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aroproduction/commviz/internal/errors"
)

func TestRamp(t *testing.T) {
	h, err := Build(Ramp, 5, Params{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1.0}, h)

	single, err := Build(Ramp, 1, Params{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, single)
}

func TestDelta(t *testing.T) {
	tests := []struct {
		length int
		center int
	}{
		{1, 0},
		{4, 2},
		{5, 2},
		{101, 50},
	}
	for _, tt := range tests {
		h, err := Build(Delta, tt.length, Params{})
		require.NoError(t, err)
		require.Len(t, h, tt.length)
		for n, v := range h {
			if n == tt.center {
				assert.Equal(t, 1.0, v)
			} else {
				assert.Equal(t, 0.0, v)
			}
		}
	}
}

func TestExponential(t *testing.T) {
	h, err := Build(Exponential, 4, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 0.25, 0.125}, h)

	// zero decay keeps only the first tap
	h, err = Build(Exponential, 4, Params{Alpha: 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0}, h)

	h, err = Build(Exponential, 6, Params{Alpha: 0.9})
	require.NoError(t, err)
	for n, v := range h {
		assert.InDelta(t, math.Pow(0.9, float64(n)), v, 1e-15)
	}
}

func TestBuildErrors(t *testing.T) {
	for _, length := range []int{0, -3} {
		_, err := Build(Delta, length, Params{})
		assert.True(t, errors.Is(err, errors.ErrInvalidParameter))
	}
	_, err := Build("gaussian", 5, Params{})
	assert.True(t, errors.Is(err, errors.ErrUnknownKey))
	_, err = Build(Exponential, 5, Params{Alpha: math.NaN()})
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Delta (Linear)", Delta.DisplayName())
	assert.Equal(t, "Exponential Decay", Exponential.DisplayName())
	assert.Equal(t, []Kind{Delta, Exponential, Ramp}, Kinds())
}
