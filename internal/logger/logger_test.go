package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		level      string
		wantErr    bool
	}{
		{name: "JSON output mode", jsonOutput: true, level: "info"},
		{name: "Console output mode", jsonOutput: false, level: "debug"},
		{name: "Default level", jsonOutput: false, level: ""},
		{name: "Unknown level", jsonOutput: false, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = zap.NewNop().Sugar()
			JSONOutput = false

			err := Initialize(tt.jsonOutput, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			Cleanup()
		})
	}
	Logger = zap.NewNop().Sugar()
}

func TestNamedDoesNotPanicOnNop(t *testing.T) {
	Logger = zap.NewNop().Sugar()
	assert.NotPanics(t, func() {
		Named("explorer").Infow("hello", FieldSamples, 10)
	})
}
