package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinelsMatch(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"invalid range", ErrInvalidRange},
		{"division by zero", ErrDivisionByZero},
		{"invalid parameter", ErrInvalidParameter},
		{"unknown key", ErrUnknownKey},
		{"shape mismatch", ErrShapeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrapf(tt.sentinel, "context %d", 42)
			assert.True(t, Is(err, tt.sentinel))
			assert.Contains(t, err.Error(), "context 42")
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, Is(ErrInvalidRange, ErrInvalidParameter))
	assert.False(t, Is(Wrap(ErrDivisionByZero, "tri"), ErrInvalidRange))
}

func TestHintsSurvive(t *testing.T) {
	err := WithHint(Wrap(ErrInvalidRange, "axis"), "start time must be less than end time")
	assert.True(t, Is(err, ErrInvalidRange))
	assert.Equal(t, "start time must be less than end time", FlattenHints(err))
}
