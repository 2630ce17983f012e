package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aroproduction/commviz/impulse"
)

type kernelView struct {
	Kind string    `json:"kind" yaml:"kind"`
	Name string    `json:"name" yaml:"name"`
	H    []float64 `json:"h" yaml:"h"`
}

type convolveView struct {
	Signal string    `json:"signal" yaml:"signal"`
	Kernel string    `json:"kernel" yaml:"kernel"`
	Dt     float64   `json:"dt" yaml:"dt"`
	T      []float64 `json:"t" yaml:"t"`
	X      []float64 `json:"x" yaml:"x"`
	Y      []float64 `json:"y" yaml:"y"`
}

// kernelFlags select an impulse-response kernel.
type kernelFlags struct {
	kind   string
	length int
	alpha  float64
}

func (k *kernelFlags) register(cmd *cobra.Command, defaultKind impulse.Kind) {
	cmd.Flags().StringVarP(&k.kind, "kernel", "k", string(defaultKind), "Kernel kind (delta/exponential/ramp)")
	k.registerShape(cmd)
}

func (k *kernelFlags) registerShape(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&k.length, "length", "l", 0, "Kernel length (0 uses the configured default)")
	cmd.Flags().Float64Var(&k.alpha, "alpha", impulse.DefaultAlpha, "Decay factor for the exponential kernel (unset uses the configured default)")
}

// params returns the kernel parameters given on the command line, or nil
// when --alpha was not set.
func (k *kernelFlags) params(cmd *cobra.Command) *impulse.Params {
	if !cmd.Flags().Changed("alpha") {
		return nil
	}
	return &impulse.Params{Alpha: k.alpha}
}

func newKernelCmd(a *app) *cobra.Command {
	var kf kernelFlags
	cmd := &cobra.Command{
		Use:   "kernel [KIND]",
		Short: "List kernels or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				views := make([]kernelView, 0, len(impulse.Kinds()))
				for _, k := range impulse.Kinds() {
					views = append(views, kernelView{Kind: string(k), Name: k.DisplayName()})
				}
				return a.emit(cmd, views, func(w io.Writer) error {
					t := newTable("KIND", "NAME")
					for _, v := range views {
						t.Row(v.Kind, v.Name)
					}
					_, err := fmt.Fprintln(w, t.String())
					return err
				})
			}

			kind := impulse.Kind(args[0])
			length := kf.length
			if length == 0 {
				length = a.explorer.Config().Impulse.DefaultLength
			}
			h, err := a.explorer.BuildKernel(kind, length, kf.params(cmd))
			if err != nil {
				return err
			}
			view := kernelView{Kind: string(kind), Name: kind.DisplayName(), H: h}
			return a.emit(cmd, view, func(w io.Writer) error {
				fmt.Fprintln(w, titleStyle.Render(view.Name))
				n := make([]float64, len(h))
				for i := range n {
					n[i] = float64(i)
				}
				return writeColumns(w, []string{"n", "h[n]"}, n, h)
			})
		},
	}
	kf.registerShape(cmd)
	return cmd
}

func newConvolveCmd(a *app) *cobra.Command {
	var (
		rng    rangeFlags
		kf     kernelFlags
		params map[string]string
	)
	cmd := &cobra.Command{
		Use:   "convolve SIGNAL",
		Short: "Convolve a sampled signal with an impulse response",
		Long: `Convolve a sampled signal with a finite impulse-response kernel.

The result has the input's length and is scaled by the sample spacing so
that it approximates the continuous convolution integral.

Examples:
  commviz convolve unit_step --kernel exponential --alpha 0.9
  commviz convolve rectangular --kernel ramp --length 51 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rng.request(args[0], params)
			if err != nil {
				return err
			}
			req.Kernel = impulse.Kind(kf.kind)
			req.KernelLength = kf.length
			req.KernelParams = kf.params(cmd)

			rep, err := a.explorer.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			view := convolveView{
				Signal: rep.Signal.Name(),
				Kernel: req.Kernel.DisplayName(),
				Dt:     rep.Input.Axis.Dt(),
				T:      rep.Input.T(),
				X:      rep.Input.Y,
				Y:      rep.Convolved,
			}
			return a.emit(cmd, view, func(w io.Writer) error {
				fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s * %s", view.Signal, view.Kernel)))
				return writeColumns(w, []string{"t", "x(t)", "y(t)"}, view.T, view.X, view.Y)
			})
		},
	}
	rng.register(cmd)
	kf.register(cmd, impulse.Delta)
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "Signal parameter name=value (repeatable)")
	return cmd
}
