package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aroproduction/commviz/signal"
)

type signalView struct {
	Key      string             `json:"key" yaml:"key"`
	Name     string             `json:"name" yaml:"name"`
	Defaults map[string]float64 `json:"defaults" yaml:"defaults"`
}

type sampledView struct {
	Name    string    `json:"name" yaml:"name"`
	Formula string    `json:"formula" yaml:"formula"`
	Mode    string    `json:"mode" yaml:"mode"`
	T       []float64 `json:"t" yaml:"t"`
	Y       []float64 `json:"y" yaml:"y"`
}

func newSignalsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signals",
		Short: "List available signals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]signalView, 0, len(signal.Keys()))
			for _, key := range signal.Keys() {
				e, _ := signal.Lookup(key)
				views = append(views, signalView{Key: key, Name: e.DisplayName(), Defaults: e.Defaults})
			}
			return a.emit(cmd, views, func(w io.Writer) error {
				t := newTable("KEY", "NAME", "DEFAULTS")
				for _, v := range views {
					t.Row(v.Key, v.Name, formatParams(v.Defaults))
				}
				_, err := fmt.Fprintln(w, t.String())
				return err
			})
		},
	}
}

func newEvalCmd(a *app) *cobra.Command {
	var (
		rng    rangeFlags
		params map[string]string
	)
	cmd := &cobra.Command{
		Use:   "eval SIGNAL",
		Short: "Sample a signal over a time range",
		Long: `Sample a signal over [tmin, tmax].

Without --dt the sample count follows the interval length; discrete mode
uses a coarse grid suited to stem plots.

Examples:
  commviz eval unit_step
  commviz eval sinusoid --param amplitude=2 --param frequency=0.5 --tmin 0 --tmax 4
  commviz eval signum --mode discrete -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rng.request(args[0], params)
			if err != nil {
				return err
			}
			rep, err := a.explorer.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			view := sampledView{
				Name:    rep.Signal.Name(),
				Formula: rep.Signal.Formula(),
				Mode:    string(req.Mode),
				T:       rep.Input.T(),
				Y:       rep.Input.Y,
			}
			return a.emit(cmd, view, func(w io.Writer) error {
				fmt.Fprintln(w, titleStyle.Render(rep.Signal.String()))
				return writeColumns(w, []string{"t", "x(t)"}, view.T, view.Y)
			})
		},
	}
	rng.register(cmd)
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "Signal parameter name=value (repeatable)")
	return cmd
}
