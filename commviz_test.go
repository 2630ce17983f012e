package commviz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aroproduction/commviz/impulse"
	"github.com/aroproduction/commviz/internal/config"
	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/internal/logger"
	"github.com/aroproduction/commviz/properties"
	"github.com/aroproduction/commviz/signal"
	"github.com/aroproduction/commviz/system"
)

func newExplorer(t *testing.T) *Explorer {
	t.Helper()
	e, err := New(nil)
	require.NoError(t, err)
	return e
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Logger = prev })
	return logs
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Convolution.Method = "spectral"
	_, err := New(cfg)
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))
}

func TestAxis(t *testing.T) {
	e := newExplorer(t)

	cont, err := e.Axis(-1, 1, signal.Continuous)
	require.NoError(t, err)
	assert.Equal(t, 2000, cont.Len())
	assert.Equal(t, -1.0, cont.Start())
	assert.Equal(t, 1.0, cont.End())

	disc, err := e.Axis(0, 5, signal.Discrete)
	require.NoError(t, err)
	assert.Equal(t, 50, disc.Len())

	spaced, err := e.AxisWithSpacing(0, 1, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, spaced.Values())

	_, err = e.Axis(2, 2, signal.Continuous)
	assert.True(t, errors.Is(err, errors.ErrInvalidRange))
}

func TestSignalUsesConfiguredImpulseTolerance(t *testing.T) {
	cfg := config.Default()
	cfg.Signal.ImpulseTolerance = 0.1
	e, err := New(cfg)
	require.NoError(t, err)

	s, err := e.Signal("unit_impulse", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Value(0.05))

	s, err = e.Signal("unit_impulse", signal.Params{"tolerance": 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Value(0.05))
}

func TestSample(t *testing.T) {
	e := newExplorer(t)
	axis, err := e.AxisWithSpacing(-1, 1, 0.5)
	require.NoError(t, err)

	got, err := e.Sample("ramp", nil, axis)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0.5, 1}, got.Y)

	_, err = e.Sample("square", nil, axis)
	assert.True(t, errors.Is(err, errors.ErrUnknownKey))
}

func TestRunSystem(t *testing.T) {
	e := newExplorer(t)
	y, err := e.RunSystem("gain", map[string]float64{"k": 2}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, y)

	_, err = e.RunSystem("gain", map[string]float64{"k": 0}, []float64{1})
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))
}

func TestVerifyStabilityLogsOverflow(t *testing.T) {
	logs := observe(t)
	e := newExplorer(t)

	res, err := e.VerifyStability([]float64{1, 2e6}, mustSystem(t, "gain"))
	require.NoError(t, err)
	assert.False(t, res.Stable)
	assert.Equal(t, properties.NumericOverflowWarning, res.Warning)
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestVerifyWrappers(t *testing.T) {
	e := newExplorer(t)
	sys := mustSystem(t, "recursive")
	x := []float64{1, 2, 3, 4, 5}

	lin, err := e.VerifyLinearity(x, []float64{0, 1, 0, 1, 0}, sys, 2, -1)
	require.NoError(t, err)
	assert.True(t, lin.Compare(1e-12).Match)

	ti, err := e.VerifyTimeInvariance(x, sys, 1)
	require.NoError(t, err)
	assert.False(t, ti.Compare(1e-12).Match)

	c, err := e.VerifyCausality(x, sys)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 0, 0, 0}, c.Output)
}

func TestKernelAndConvolve(t *testing.T) {
	e := newExplorer(t)
	h, err := e.BuildKernel(impulse.Exponential, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 0.25}, h)

	h, err = e.BuildKernel(impulse.Exponential, 3, &impulse.Params{Alpha: 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, h)

	delta, err := e.BuildKernel(impulse.Delta, 3, nil)
	require.NoError(t, err)
	y, err := e.Convolve([]float64{4, 8, 12}, delta, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, y)
}

func TestAnalyze(t *testing.T) {
	e := newExplorer(t)
	rep, err := e.Analyze(context.Background(), Request{
		TMin: 0, TMax: 1, Dt: 0.25,
		Signal:       "unit_step",
		System:       "gain",
		SystemParams: map[string]float64{"k": 2},
		Checks:       properties.AllChecks(),
		Kernel:       impulse.Delta,
		KernelLength: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "Unit Step", rep.Signal.Name())
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, rep.Input.Y)
	assert.Equal(t, []float64{2, 2, 2, 2, 2}, rep.Output)
	require.Len(t, rep.Properties, 4)
	for _, r := range rep.Properties {
		assert.True(t, r.Compare(1e-12).Match, r.Property.String())
	}
	assert.True(t, rep.Properties[3].Stable)
	assert.Equal(t, []float64{0, 1, 0}, rep.Kernel)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25, 0.25}, rep.Convolved)
}

func TestAnalyzeSignalOnly(t *testing.T) {
	e := newExplorer(t)
	rep, err := e.Analyze(context.Background(), Request{TMin: -5, TMax: 5, Mode: signal.Discrete, Signal: "signum"})
	require.NoError(t, err)
	assert.Equal(t, 100, rep.Input.Len())
	assert.Nil(t, rep.Output)
	assert.Nil(t, rep.Properties)
	assert.Nil(t, rep.Convolved)
}

func TestAnalyzeDefaultKernelLength(t *testing.T) {
	e := newExplorer(t)
	rep, err := e.Analyze(context.Background(), Request{TMin: 0, TMax: 1, Signal: "unit_step", Kernel: impulse.Ramp})
	require.NoError(t, err)
	assert.Len(t, rep.Kernel, impulse.DefaultLength)
	assert.Len(t, rep.Convolved, rep.Input.Len())
}

func TestAnalyzeErrors(t *testing.T) {
	logs := observe(t)
	e := newExplorer(t)
	ctx := context.Background()

	_, err := e.Analyze(ctx, Request{TMin: 1, TMax: 0, Signal: "ramp"})
	assert.True(t, errors.Is(err, errors.ErrInvalidRange))

	_, err = e.Analyze(ctx, Request{TMin: 0, TMax: 1, Signal: "ramp", Checks: properties.AllChecks()})
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))

	_, err = e.Analyze(ctx, Request{TMin: 0, TMax: 1, Signal: "ramp", System: "delay"})
	assert.True(t, errors.Is(err, errors.ErrUnknownKey))

	_, err = e.Analyze(ctx, Request{TMin: 0, TMax: 1, Signal: "ramp", Kernel: "gauss"})
	assert.True(t, errors.Is(err, errors.ErrUnknownKey))

	assert.Equal(t, 4, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestAnalyzeUnstable(t *testing.T) {
	logs := observe(t)
	e := newExplorer(t)
	rep, err := e.Analyze(context.Background(), Request{
		TMin: 0, TMax: 1, Dt: 0.5,
		Signal:       "unit_step",
		SignalParams: signal.Params{"constant": 1e6},
		System:       "gain",
		SystemParams: map[string]float64{"k": 5},
		Checks:       properties.Selection{Stability: true},
	})
	require.NoError(t, err)
	require.Len(t, rep.Properties, 1)
	assert.False(t, rep.Properties[0].Stable)
	assert.Equal(t, 5e6, rep.Properties[0].MaxAbs)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestExplorerPicksUpLaterLogger(t *testing.T) {
	e := newExplorer(t)
	logs := observe(t)

	_, err := e.Analyze(context.Background(), Request{TMin: 1, TMax: 0, Signal: "ramp"})
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestAnalyzeKernelParams(t *testing.T) {
	e := newExplorer(t)
	rep, err := e.Analyze(context.Background(), Request{
		TMin: 0, TMax: 1, Dt: 0.25,
		Signal:       "unit_step",
		Kernel:       impulse.Exponential,
		KernelLength: 3,
		KernelParams: &impulse.Params{Alpha: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, rep.Kernel)
}

func mustSystem(t *testing.T, key string) system.System {
	t.Helper()
	s, err := system.New(key, nil)
	require.NoError(t, err)
	return s
}

func BenchmarkAnalyze(b *testing.B) {
	e, err := New(nil)
	require.NoError(b, err)
	req := Request{
		TMin: -10, TMax: 10,
		Signal: "sinusoid",
		System: "recursive",
		Checks: properties.AllChecks(),
		Kernel: impulse.Exponential,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Analyze(context.Background(), req); err != nil {
			b.Fatal(err)
		}
	}
}
