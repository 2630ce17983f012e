package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/properties"
	"github.com/aroproduction/commviz/system"
)

type parameterView struct {
	Name    string  `json:"name" yaml:"name"`
	Default float64 `json:"default" yaml:"default"`
	Domain  string  `json:"domain" yaml:"domain"`
}

type systemView struct {
	Key        string          `json:"key" yaml:"key"`
	Name       string          `json:"name" yaml:"name"`
	Parameters []parameterView `json:"parameters" yaml:"parameters"`
}

type checkView struct {
	Property     string    `json:"property" yaml:"property"`
	Match        *bool     `json:"match,omitempty" yaml:"match,omitempty"`
	MaxDeviation *float64  `json:"max_deviation,omitempty" yaml:"max_deviation,omitempty"`
	Stable       *bool     `json:"stable,omitempty" yaml:"stable,omitempty"`
	MaxAbs       float64   `json:"max_abs" yaml:"max_abs"`
	Warning      string    `json:"warning,omitempty" yaml:"warning,omitempty"`
	Output       []float64 `json:"output" yaml:"output"`
}

type verifyView struct {
	Signal string      `json:"signal" yaml:"signal"`
	System string      `json:"system" yaml:"system"`
	Checks []checkView `json:"checks" yaml:"checks"`
}

func newSystemCmd(a *app) *cobra.Command {
	var (
		input  []float64
		params map[string]string
	)
	cmd := &cobra.Command{
		Use:   "system [KIND]",
		Short: "List systems or run one on a sample vector",
		Long: `Without arguments, list the available systems and their parameters.
With a system kind, apply it to the samples given by --input.

Examples:
  commviz system
  commviz system gain --param k=2 --input 1,2,3
  commviz system recursive --param alpha=0.5 --input 1,2,3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listSystems(cmd)
			}
			if len(input) == 0 {
				return errors.WithHint(
					errors.Wrap(errors.ErrShapeMismatch, "no input samples"),
					"pass --input 1,2,3")
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			y, err := a.explorer.RunSystem(args[0], p, input)
			if err != nil {
				return err
			}
			return a.emit(cmd, y, func(w io.Writer) error {
				idx := make([]float64, len(y))
				for i := range idx {
					idx[i] = float64(i)
				}
				return writeColumns(w, []string{"n", "x[n]", "y[n]"}, idx, input, y)
			})
		},
	}
	cmd.Flags().Float64SliceVarP(&input, "input", "i", nil, "Input samples (comma separated)")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "System parameter name=value (repeatable)")
	return cmd
}

func (a *app) listSystems(cmd *cobra.Command) error {
	kinds := system.Kinds()
	views := make([]systemView, len(kinds))
	for i, k := range kinds {
		views[i] = systemView{Key: k.Key, Name: k.DisplayName}
		for _, p := range k.Parameters {
			views[i].Parameters = append(views[i].Parameters,
				parameterView{Name: p.Name, Default: p.Default, Domain: p.Domain.String()})
		}
	}
	return a.emit(cmd, views, func(w io.Writer) error {
		t := newTable("KEY", "NAME", "PARAMETERS")
		for _, v := range views {
			parts := make([]string, len(v.Parameters))
			for i, p := range v.Parameters {
				parts[i] = fmt.Sprintf("%s=%g in %s", p.Name, p.Default, p.Domain)
			}
			t.Row(v.Key, v.Name, strings.Join(parts, ", "))
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	})
}

func newVerifyCmd(a *app) *cobra.Command {
	var (
		rng          rangeFlags
		signalKey    string
		signalParams map[string]string
		params       map[string]string
		checks       []string
		shift        int
		coefA, coefB float64
	)
	cmd := &cobra.Command{
		Use:   "verify KIND",
		Short: "Check linearity, time invariance, causality and stability",
		Long: `Sample a signal, run it through a system and check its properties.

Linearity compares S(a·x + b·x2) with a·S(x) + b·S(x2) for x2 = 0.5·x.
Time invariance compares S(roll(x, shift)) with roll(S(x), shift).
Causality shows the response to x with every sample after the first zeroed.
Stability requires every output magnitude to stay below the configured bound.

Examples:
  commviz verify gain --signal sinusoid --param k=2
  commviz verify recursive --check time-invariance --shift 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rng.request(signalKey, signalParams)
			if err != nil {
				return err
			}
			if req.SystemParams, err = parseParams(params); err != nil {
				return err
			}
			if req.Checks, err = parseChecks(checks); err != nil {
				return err
			}
			req.System = args[0]
			req.Checks.Shift = shift
			req.Checks.A, req.Checks.B = coefA, coefB

			rep, err := a.explorer.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			tol := a.explorer.Config().Properties.Tolerance
			view := verifyView{Signal: rep.Signal.Name(), System: req.System}
			for _, r := range rep.Properties {
				view.Checks = append(view.Checks, newCheckView(r, tol))
			}
			return a.emit(cmd, view, func(w io.Writer) error {
				fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s through %s", view.Signal, view.System)))
				t := newTable("PROPERTY", "RESULT", "MAX |y|")
				for _, c := range view.Checks {
					t.Row(c.Property, c.summary(), fmt.Sprintf("%g", c.MaxAbs))
				}
				_, err := fmt.Fprintln(w, t.String())
				return err
			})
		},
	}
	rng.register(cmd)
	cmd.Flags().StringVarP(&signalKey, "signal", "s", "sinusoid", "Input signal")
	cmd.Flags().StringToStringVar(&signalParams, "signal-param", nil, "Signal parameter name=value (repeatable)")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "System parameter name=value (repeatable)")
	cmd.Flags().StringSliceVarP(&checks, "check", "c", nil, "Properties to check (default all)")
	cmd.Flags().IntVar(&shift, "shift", properties.DefaultShift, "Circular shift for time invariance")
	cmd.Flags().Float64Var(&coefA, "a", 1, "Linearity coefficient a")
	cmd.Flags().Float64Var(&coefB, "b", 1, "Linearity coefficient b")
	return cmd
}

func parseChecks(names []string) (properties.Selection, error) {
	if len(names) == 0 {
		return properties.AllChecks(), nil
	}
	props := make([]properties.Property, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case properties.Linearity.String():
			props = append(props, properties.Linearity)
		case properties.TimeInvariance.String():
			props = append(props, properties.TimeInvariance)
		case properties.Causality.String():
			props = append(props, properties.Causality)
		case properties.Stability.String():
			props = append(props, properties.Stability)
		default:
			return properties.Selection{}, errors.WithHint(
				errors.Wrapf(errors.ErrUnknownKey, "property %q", name),
				"use linearity, time-invariance, causality or stability")
		}
	}
	return properties.NewSelection(props...), nil
}

func newCheckView(r properties.Result, tol float64) checkView {
	v := checkView{
		Property: r.Property.String(),
		MaxAbs:   r.MaxAbs,
		Warning:  string(r.Warning),
		Output:   r.Output,
	}
	switch r.Property {
	case properties.Linearity, properties.TimeInvariance:
		cmp := r.Compare(tol)
		v.Match, v.MaxDeviation = &cmp.Match, &cmp.MaxDeviation
	case properties.Stability:
		v.Stable = &r.Stable
	}
	return v
}

func (c checkView) summary() string {
	switch {
	case c.Match != nil:
		return verdict(*c.Match, "holds", fmt.Sprintf("violated (max deviation %g)", *c.MaxDeviation))
	case c.Stable != nil:
		return verdict(*c.Stable, "stable", "unstable: "+c.Warning)
	default:
		return fmt.Sprintf("response to first sample: %d samples", len(c.Output))
	}
}
