package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aroproduction/commviz"
	"github.com/aroproduction/commviz/internal/errors"
	"github.com/aroproduction/commviz/signal"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// emit writes v as JSON or YAML, or calls text for the human format.
func (a *app) emit(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	w := cmd.OutOrStdout()
	switch a.output {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func verdict(ok bool, pass, fail string) string {
	if ok {
		return passStyle.Render(pass)
	}
	return failStyle.Render(fail)
}

// parseParams converts name=value flag pairs to numbers.
func parseParams(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	res := make(map[string]float64, len(raw))
	for name, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidParameter, "parameter %s=%q is not a number", name, s)
		}
		res[name] = v
	}
	return res, nil
}

func formatParams(p map[string]float64) string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, p[name])
	}
	return strings.Join(parts, " ")
}

// rangeFlags are the time-axis flags shared by the sampling commands.
type rangeFlags struct {
	tMin, tMax float64
	dt         float64
	mode       string
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&r.tMin, "tmin", -5, "Start time")
	cmd.Flags().Float64Var(&r.tMax, "tmax", 5, "End time")
	cmd.Flags().Float64Var(&r.dt, "dt", 0, "Sample spacing (0 picks the count from the interval length)")
	cmd.Flags().StringVar(&r.mode, "mode", "continuous", "Display mode (continuous/discrete)")
}

func (r *rangeFlags) signalMode() (signal.Mode, error) {
	for _, m := range signal.Modes() {
		if strings.EqualFold(r.mode, string(m)) {
			return m, nil
		}
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrInvalidParameter, "mode %q", r.mode),
		"use continuous or discrete")
}

// request fills the time-axis part of a pipeline request.
func (r *rangeFlags) request(signalKey string, params map[string]string) (commviz.Request, error) {
	mode, err := r.signalMode()
	if err != nil {
		return commviz.Request{}, err
	}
	p, err := parseParams(params)
	if err != nil {
		return commviz.Request{}, err
	}
	return commviz.Request{
		TMin:         r.tMin,
		TMax:         r.tMax,
		Dt:           r.dt,
		Mode:         mode,
		Signal:       signalKey,
		SignalParams: p,
	}, nil
}

// writeColumns prints aligned columns of equal length, one row per sample.
func writeColumns(w io.Writer, headers []string, cols ...[]float64) error {
	if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}
	row := make([]string, len(cols))
	for i := range cols[0] {
		for j, c := range cols {
			row[j] = strconv.FormatFloat(c[i], 'g', 8, 64)
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
