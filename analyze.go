package commviz

import (
	"context"

	"github.com/aroproduction/commviz/impulse"
	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/internal/logger"
	"github.com/aroproduction/commviz/properties"
	"github.com/aroproduction/commviz/signal"
	"github.com/aroproduction/commviz/system"
	"github.com/aroproduction/commviz/timeaxis"
)

// Request describes one interaction: a time range, a signal, and optionally
// a system to verify and a kernel to convolve with.
type Request struct {
	TMin, TMax float64
	// Display mode; the zero value is Continuous
	Mode signal.Mode
	// Sample spacing; zero lets the resolution policy pick the count
	Dt float64

	Signal       string
	SignalParams signal.Params

	// System key; empty skips the system stage
	System       string
	SystemParams map[string]float64
	Checks       properties.Selection

	// Kernel kind; empty skips convolution
	Kernel impulse.Kind
	// Kernel length; zero uses the configured default
	KernelLength int
	// Kernel parameters; nil uses the configured defaults
	KernelParams *impulse.Params
}

// Report is everything a frontend renders for one Request.
type Report struct {
	Signal signal.Signal
	Input  signal.Sampled

	// Present when a system was requested
	Output     []float64
	Properties []properties.Result

	// Present when a kernel was requested
	Kernel    []float64
	Convolved []float64
}

// Analyze runs the per-request pipeline: axis, signal, system, checks and
// convolution. Nothing is kept between calls.
func (e *Explorer) Analyze(ctx context.Context, req Request) (*Report, error) {
	rep, err := e.analyze(ctx, req)
	return rep, e.wrapRequest(err, "analyze")
}

func (e *Explorer) analyze(ctx context.Context, req Request) (*Report, error) {
	mode := req.Mode
	if mode == "" {
		mode = signal.Continuous
	}

	var (
		axis timeaxis.Axis
		err  error
	)
	if req.Dt != 0 {
		axis, err = e.AxisWithSpacing(req.TMin, req.TMax, req.Dt)
	} else {
		axis, err = e.Axis(req.TMin, req.TMax, mode)
	}
	if err != nil {
		return nil, err
	}
	e.log().Debugw("axis built",
		logger.FieldTMin, req.TMin, logger.FieldTMax, req.TMax,
		logger.FieldSamples, axis.Len(), logger.FieldDt, axis.Dt())

	s, err := e.Signal(req.Signal, req.SignalParams)
	if err != nil {
		return nil, err
	}
	rep := &Report{Signal: s, Input: s.Sample(axis)}
	e.log().Debugw("signal sampled", logger.FieldSignal, s.Name(), logger.FieldSamples, rep.Input.Len())

	if req.System != "" {
		if err := e.runSystem(ctx, req, rep); err != nil {
			return nil, err
		}
	} else if anyCheck(req.Checks) {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrInvalidParameter, "property checks need a system"),
			"set a system key or disable the checks")
	}

	if req.Kernel != "" {
		length := req.KernelLength
		if length == 0 {
			length = e.cfg.Impulse.DefaultLength
		}
		h, err := e.BuildKernel(req.Kernel, length, req.KernelParams)
		if err != nil {
			return nil, err
		}
		y, err := e.Convolve(rep.Input.Y, h, axis.Dt())
		if err != nil {
			return nil, err
		}
		rep.Kernel, rep.Convolved = h, y
		e.log().Debugw("convolved", logger.FieldKernel, string(req.Kernel), logger.FieldSamples, len(y))
	}
	return rep, nil
}

func (e *Explorer) runSystem(ctx context.Context, req Request, rep *Report) error {
	sys, err := system.New(req.System, req.SystemParams)
	if err != nil {
		return err
	}
	rep.Output = sys.Apply(rep.Input.Y)

	if !anyCheck(req.Checks) {
		return nil
	}
	results, err := e.verifier.Run(ctx, rep.Input.Y, sys, req.Checks)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Property == properties.Stability && !r.Stable {
			e.log().Warnw(string(r.Warning), logger.FieldSystem, req.System, logger.FieldMaxAbs, r.MaxAbs)
		}
	}
	rep.Properties = results
	return nil
}

func anyCheck(sel properties.Selection) bool {
	return sel.Linearity || sel.TimeInvariance || sel.Causality || sel.Stability
}
