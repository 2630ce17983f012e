package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aroproduction/commviz/internal/errors"
)

func TestAvailableSignals(t *testing.T) {
	assert.Equal(t, []string{
		"Unit Impulse",
		"Unit Step",
		"Ramp",
		"Exponential",
		"Sinusoid",
		"Sinc",
		"Signum",
		"Rectangular",
		"Triangular",
	}, AvailableSignals())
	assert.Len(t, Keys(), 9)
}

func TestBuildWithDefaults(t *testing.T) {
	s, err := Build("sinusoid", nil)
	require.NoError(t, err)
	assert.Equal(t, Params{"amplitude": 1.0, "frequency": 1.0, "phase": 0.0}, s.Params())

	r, err := Build("rectangular", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Value(-1))
	assert.Equal(t, 0.0, r.Value(-1.5))
}

func TestBuildWithOverrides(t *testing.T) {
	s, err := Build("unit_step", Params{"constant": 4})
	require.NoError(t, err)
	assert.Equal(t, 4.0, s.Value(0))

	e, err := Build("exponential", Params{"a": -2})
	require.NoError(t, err)
	assert.Equal(t, Params{"a": -2.0}, e.Params())
}

func TestBuildErrors(t *testing.T) {
	_, err := Build("sawtooth", nil)
	assert.True(t, errors.Is(err, errors.ErrUnknownKey))

	_, err = Build("ramp", Params{"slope": 2})
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))

	_, err = Build("triangular", Params{"start": 2, "end": 2})
	assert.True(t, errors.Is(err, errors.ErrDivisionByZero))
}

func TestLookupDefaultsAreCopies(t *testing.T) {
	e, ok := Lookup("sinc")
	require.True(t, ok)
	e.Defaults["amplitude"] = 99

	again, ok := Lookup("sinc")
	require.True(t, ok)
	assert.Equal(t, 1.0, again.Defaults["amplitude"])

	_, ok = Lookup("missing")
	assert.False(t, ok)
}

func TestModes(t *testing.T) {
	assert.Equal(t, []Mode{Continuous, Discrete}, Modes())
}

func TestRegistryConcurrentReads(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for _, key := range Keys() {
				_, _ = Build(key, nil)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
