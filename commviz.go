// Package commviz is the in-process engine behind the signals and systems
// explorer.
//
// An Explorer samples canonical signals over a time axis, runs them through
// stateless systems, verifies LTI properties and convolves them with
// impulse-response kernels. It holds configuration only; every call
// recomputes from scratch and shares no mutable state, so one Explorer may
// serve concurrent callers.
package commviz

import (
	"go.uber.org/zap"

	"github.com/aroproduction/commviz/convolution"
	"github.com/aroproduction/commviz/impulse"
	"github.com/aroproduction/commviz/internal/config"
	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/internal/logger"
	"github.com/aroproduction/commviz/properties"
	"github.com/aroproduction/commviz/signal"
	"github.com/aroproduction/commviz/system"
	"github.com/aroproduction/commviz/timeaxis"
)

// Explorer is the facade the frontend calls.
type Explorer struct {
	cfg      config.Config
	axes     *timeaxis.Builder
	verifier *properties.Verifier
	conv     *convolution.Engine
}

// New returns an Explorer for cfg; a nil cfg uses the defaults.
func New(cfg *config.Config) (*Explorer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tiers := make([]timeaxis.Tier, len(cfg.TimeAxis.TierSpans))
	for i := range tiers {
		tiers[i] = timeaxis.Tier{Span: cfg.TimeAxis.TierSpans[i], Samples: cfg.TimeAxis.TierSamples[i]}
	}
	conv, err := convolution.NewEngine(convolution.Method(cfg.Convolution.Method), cfg.Convolution.FFTThreshold)
	if err != nil {
		return nil, err
	}

	return &Explorer{
		cfg:      *cfg,
		axes:     timeaxis.NewBuilder(timeaxis.Resolution{Tiers: tiers, MaxSamples: cfg.TimeAxis.MaxSamples}),
		verifier: properties.NewVerifier(cfg.Properties.StabilityBound, cfg.Properties.Tolerance),
		conv:     conv,
	}, nil
}

// log resolves the process logger on every call, so an Explorer built
// before logger.Initialize still logs once it has run.
func (e *Explorer) log() *zap.SugaredLogger {
	return logger.Named("explorer")
}

// Config returns a copy of the Explorer's configuration.
func (e *Explorer) Config() config.Config { return e.cfg }

// Axis builds the time axis for a display mode: the resolution policy for
// continuous signals, the coarse discrete heuristic for stems.
func (e *Explorer) Axis(tMin, tMax float64, mode signal.Mode) (timeaxis.Axis, error) {
	if mode == signal.Discrete {
		return e.axes.Discrete(tMin, tMax, e.cfg.TimeAxis.DiscretePointsPerUnit, e.cfg.TimeAxis.DiscreteMaxPoints)
	}
	return e.axes.Build(tMin, tMax, timeaxis.Auto())
}

// AxisWithSpacing builds an axis stepping by dt; a zero dt uses the
// configured default spacing.
func (e *Explorer) AxisWithSpacing(tMin, tMax, dt float64) (timeaxis.Axis, error) {
	if dt == 0 {
		dt = e.cfg.TimeAxis.DefaultDt
	}
	return e.axes.Build(tMin, tMax, timeaxis.Spacing(dt))
}

// Signal builds a registered signal. The unit impulse picks up the
// configured tolerance unless params overrides it.
func (e *Explorer) Signal(key string, params signal.Params) (signal.Signal, error) {
	if key == "unit_impulse" {
		if _, ok := params["tolerance"]; !ok {
			params = params.Clone()
			params["tolerance"] = e.cfg.Signal.ImpulseTolerance
		}
	}
	return signal.Build(key, params)
}

// Evaluate returns s evaluated at every time in t.
func (e *Explorer) Evaluate(s signal.Signal, t []float64) []float64 {
	return s.Evaluate(t)
}

// Sample builds a registered signal and evaluates it over axis.
func (e *Explorer) Sample(key string, params signal.Params, axis timeaxis.Axis) (signal.Sampled, error) {
	s, err := e.Signal(key, params)
	if err != nil {
		return signal.Sampled{}, err
	}
	return s.Sample(axis), nil
}

// RunSystem applies the system registered under kind to x.
func (e *Explorer) RunSystem(kind string, params map[string]float64, x []float64) ([]float64, error) {
	y, err := system.Run(kind, params, x)
	if err != nil {
		return nil, err
	}
	e.log().Debugw("system applied", logger.FieldSystem, kind, logger.FieldSamples, len(x))
	return y, nil
}

// VerifyLinearity compares S(a·x1+b·x2) with a·S(x1)+b·S(x2).
func (e *Explorer) VerifyLinearity(x1, x2 []float64, s system.System, a, b float64) (properties.Result, error) {
	return properties.CheckLinearity(x1, x2, s, a, b)
}

// VerifyTimeInvariance compares S(roll(x, shift)) with roll(S(x), shift).
func (e *Explorer) VerifyTimeInvariance(x []float64, s system.System, shift int) (properties.Result, error) {
	return properties.CheckTimeInvariance(x, s, shift)
}

// VerifyCausality runs S on x with its future blocked.
func (e *Explorer) VerifyCausality(x []float64, s system.System) (properties.Result, error) {
	return properties.CheckCausality(x, s)
}

// VerifyStability runs S on x against the configured bound.
func (e *Explorer) VerifyStability(x []float64, s system.System) (properties.Result, error) {
	res, err := properties.CheckStability(x, s, e.cfg.Properties.StabilityBound)
	if err != nil {
		return res, err
	}
	if !res.Stable {
		e.log().Warnw(string(res.Warning), logger.FieldMaxAbs, res.MaxAbs, logger.FieldStable, false)
	}
	return res, nil
}

// BuildKernel returns an impulse-response kernel. Nil params use the
// configured default decay factor.
func (e *Explorer) BuildKernel(kind impulse.Kind, length int, params *impulse.Params) ([]float64, error) {
	p := impulse.Params{Alpha: e.cfg.Impulse.DefaultAlpha}
	if params != nil {
		p = *params
	}
	return impulse.Build(kind, length, p)
}

// Convolve returns the same-length convolution of x with h scaled by dt.
func (e *Explorer) Convolve(x, h []float64, dt float64) ([]float64, error) {
	return e.conv.Convolve(x, h, dt)
}

// wrapRequest logs a failed request before handing the error back.
func (e *Explorer) wrapRequest(err error, op string) error {
	if err == nil {
		return nil
	}
	e.log().Errorw("request failed", logger.FieldOperation, op, logger.FieldError, err)
	return errors.Wrap(err, op)
}
