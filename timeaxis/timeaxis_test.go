package timeaxis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aroproduction/commviz/internal/errors"
)

func assertStrictlyIncreasing(t *testing.T, a Axis) {
	t.Helper()
	for i := 1; i < a.Len(); i++ {
		require.Greater(t, a.At(i), a.At(i-1), "sample %d", i)
	}
}

func TestBuildCount(t *testing.T) {
	b := NewBuilder(DefaultResolution())
	a, err := b.Build(-2, 3, Count(11))
	require.NoError(t, err)
	assert.Equal(t, 11, a.Len())
	assert.Equal(t, -2.0, a.Start())
	assert.Equal(t, 3.0, a.End())
	assert.InDelta(t, 0.5, a.Dt(), 1e-12)
	assertStrictlyIncreasing(t, a)
}

func TestBuildAutoResolution(t *testing.T) {
	b := NewBuilder(DefaultResolution())
	tests := []struct {
		name       string
		tMin, tMax float64
		want       int
	}{
		{"unit interval", 0, 1, 1000},
		{"short interval", -0.25, 0.25, 1000},
		{"ten", -5, 5, 2000},
		{"hundred", 0, 100, 5000},
		{"capped", -1000, 1000, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := b.Build(tt.tMin, tt.tMax, Auto())
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Len())
			assert.Equal(t, tt.tMin, a.Start())
			assert.Equal(t, tt.tMax, a.End())
			assertStrictlyIncreasing(t, a)
		})
	}
}

func TestBuildSpacing(t *testing.T) {
	b := NewBuilder(DefaultResolution())
	a, err := b.Build(0, 1, Spacing(0.25))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, a.Values())
	assertStrictlyIncreasing(t, a)
}

func TestBuildSpacingRoundingEdge(t *testing.T) {
	// (5 + 0.1 - -5) / 0.1 rounds just above 101, so one sample lands past t_max.
	b := NewBuilder(DefaultResolution())
	a, err := b.Build(-5, 5, Spacing(0.1))
	require.NoError(t, err)
	assert.Equal(t, -5.0, a.Start())
	assert.GreaterOrEqual(t, a.End(), 5.0-1e-9)
	assert.LessOrEqual(t, a.End(), 5.1+1e-9)
	assert.InDelta(t, 0.1, a.Dt(), 1e-12)
	assertStrictlyIncreasing(t, a)
}

func TestBuildErrors(t *testing.T) {
	b := NewBuilder(DefaultResolution())
	tests := []struct {
		name       string
		tMin, tMax float64
		mode       Mode
	}{
		{"equal bounds", 1, 1, Auto()},
		{"reversed bounds", 2, 1, Count(10)},
		{"zero count", 0, 1, Count(0)},
		{"single sample", 0, 1, Count(1)},
		{"too many samples", 0, 1, Count(10001)},
		{"zero spacing", 0, 1, Spacing(0)},
		{"negative spacing", 0, 1, Spacing(-0.1)},
		{"spacing beyond cap", 0, 1000, Spacing(1e-3)},
		{"NaN bound", math.NaN(), 1, Auto()},
		{"infinite bound", 0, math.Inf(1), Count(10)},
		{"span overflows", -1e308, 1e308, Auto()},
		{"span overflows with spacing", -1e308, 1e308, Spacing(1)},
		{"spacing below resolution", 1e16, 1e16 + 8, Spacing(0.5)},
		{"count below resolution", 1e16, 1e16 + 8, Count(1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Build(tt.tMin, tt.tMax, tt.mode)
			assert.True(t, errors.Is(err, errors.ErrInvalidRange), "got %v", err)
		})
	}
}

func TestDiscrete(t *testing.T) {
	b := NewBuilder(DefaultResolution())
	tests := []struct {
		name       string
		tMin, tMax float64
		want       int
	}{
		{"two units", -1, 1, 20},
		{"capped", -10, 10, 100},
		{"narrow range floors at two", 0, 0.5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := b.Discrete(tt.tMin, tt.tMax, 10, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Len())
			assert.Equal(t, tt.tMin, a.Start())
			assert.Equal(t, tt.tMax, a.End())
		})
	}

	wide, err := b.Discrete(0, 1e19, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, wide.Len())
	assertStrictlyIncreasing(t, wide)

	for _, bounds := range [][2]float64{{1, 0}, {math.NaN(), 1}, {0, math.NaN()}, {math.Inf(-1), 0}, {-1e308, 1e308}} {
		_, err := b.Discrete(bounds[0], bounds[1], 10, 100)
		assert.True(t, errors.Is(err, errors.ErrInvalidRange), "bounds %v", bounds)
	}
}

func TestFromValues(t *testing.T) {
	a, err := FromValues([]float64{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, a.Vector().Len())

	_, err = FromValues([]float64{0, 0, 1})
	assert.True(t, errors.Is(err, errors.ErrInvalidRange))
	_, err = FromValues([]float64{0, math.NaN()})
	assert.True(t, errors.Is(err, errors.ErrInvalidRange))
	_, err = FromValues(nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidRange))
}

func TestValuesIsACopy(t *testing.T) {
	b := NewBuilder(DefaultResolution())
	a, err := b.Build(0, 1, Count(3))
	require.NoError(t, err)
	v := a.Values()
	v[0] = 42
	assert.Equal(t, 0.0, a.Start())
}
