// Package commands implements the commviz command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/aroproduction/commviz"
	"github.com/aroproduction/commviz/internal/config"
	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/internal/logger"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	output     string
	verbose    int

	explorer *commviz.Explorer
}

// NewRootCmd returns the commviz command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "commviz",
		Short: "Explore signals, systems and convolution",
		Long: `commviz - signals and systems explorer.

Samples canonical continuous-time signals, runs them through simple
discrete systems, checks linearity, time invariance, causality and
stability, and convolves them with impulse-response kernels.

Examples:
  commviz signals                                  # List available signals
  commviz eval sinusoid --param frequency=2        # Sample a sinusoid
  commviz system recursive --input 1,2,3           # Run a system on samples
  commviz verify gain --signal ramp --param k=2    # Check LTI properties
  commviz convolve unit_step --kernel exponential  # Convolve with a kernel
  commviz plot sinc --out sinc.png                 # Render a figure`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: defaults and COMMVIZ_* environment)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatText, "Output format (text/json/yaml)")
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "Enable debug logging")

	root.AddCommand(
		newSignalsCmd(a),
		newEvalCmd(a),
		newSystemCmd(a),
		newVerifyCmd(a),
		newKernelCmd(a),
		newConvolveCmd(a),
		newPlotCmd(a),
	)
	return root
}

func (a *app) init() error {
	switch a.output {
	case formatText, formatJSON, formatYAML:
	default:
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidParameter, "output format %q", a.output),
			"use text, json or yaml")
	}

	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if a.verbose > 0 {
		level = "debug"
	}
	if err := logger.Initialize(cfg.Log.JSON, level); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	a.explorer, err = commviz.New(cfg)
	return err
}
