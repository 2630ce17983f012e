package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/aroproduction/commviz/impulse"
	"github.com/aroproduction/commviz/internal/logger"
	"github.com/aroproduction/commviz/render"
)

type plotView struct {
	Path   string   `json:"path" yaml:"path"`
	Series []string `json:"series" yaml:"series"`
}

func newPlotCmd(a *app) *cobra.Command {
	var (
		rng           rangeFlags
		kf            kernelFlags
		params        map[string]string
		systemKey     string
		systemParams  map[string]string
		out           string
		width, height float64
	)
	cmd := &cobra.Command{
		Use:   "plot SIGNAL",
		Short: "Render a signal, its system response and its convolution",
		Long: `Render a sampled signal to an image. The format follows the file extension
(png, svg, pdf, eps, jpg, tif). Discrete mode draws stems.

With --system the system output is drawn on the same axes; with --kernel the
convolution is drawn as well.

Examples:
  commviz plot sinc --out sinc.svg
  commviz plot unit_step --mode discrete --system recursive --out step.png
  commviz plot rectangular --kernel exponential --out conv.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rng.request(args[0], params)
			if err != nil {
				return err
			}
			req.System = systemKey
			if req.SystemParams, err = parseParams(systemParams); err != nil {
				return err
			}
			if kf.kind != "" {
				req.Kernel = impulse.Kind(kf.kind)
				req.KernelLength = kf.length
				req.KernelParams = kf.params(cmd)
			}

			rep, err := a.explorer.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			fig := render.FromSampled(rep.Signal.Name(), rep.Input, render.StyleFor(req.Mode))
			if rep.Output != nil {
				fig.Series = append(fig.Series, render.Series{Name: "System output", Y: rep.Output})
			}
			if rep.Convolved != nil {
				fig.Series = append(fig.Series, render.Series{Name: "Convolution with " + req.Kernel.DisplayName(), Y: rep.Convolved})
			}
			if err := fig.Save(out, vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch); err != nil {
				return err
			}
			logger.Named("plot").Debugw("figure saved", "path", out, logger.FieldSamples, rep.Input.Len())

			view := plotView{Path: out}
			for _, s := range fig.Series {
				view.Series = append(view.Series, s.Name)
			}
			return a.emit(cmd, view, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "wrote %s (%d series)\n", out, len(view.Series))
				return err
			})
		},
	}
	rng.register(cmd)
	kf.register(cmd, "")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "Signal parameter name=value (repeatable)")
	cmd.Flags().StringVar(&systemKey, "system", "", "System to run the signal through")
	cmd.Flags().StringToStringVar(&systemParams, "system-param", nil, "System parameter name=value (repeatable)")
	cmd.Flags().StringVar(&out, "out", "signal.png", "Output image path")
	cmd.Flags().Float64Var(&width, "width", 8, "Figure width in inches")
	cmd.Flags().Float64Var(&height, "height", 4, "Figure height in inches")
	return cmd
}
