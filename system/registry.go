package system

import (
	"math"
	"sort"
	"strings"

	"github.com/aroproduction/commviz/internal/errors"
)

// Domain is the accepted interval of a numeric system parameter.
type Domain struct {
	Min, Max float64
	// MinOpen excludes Min itself
	MinOpen bool
}

// Contains reports whether v lies in the domain.
func (d Domain) Contains(v float64) bool {
	if math.IsNaN(v) || v > d.Max {
		return false
	}
	if d.MinOpen {
		return v > d.Min
	}
	return v >= d.Min
}

func (d Domain) String() string {
	open := "["
	if d.MinOpen {
		open = "("
	}
	return open + formatFloat(d.Min) + "," + formatFloat(d.Max) + "]"
}

// Parameter declares one numeric parameter of a system kind.
type Parameter struct {
	Name    string
	Default float64
	Domain  Domain
}

// Kind describes a selectable system.
type Kind struct {
	Key         string
	DisplayName string
	Parameters  []Parameter
	build       func(p map[string]float64) System
}

var kinds = []Kind{
	{
		Key:         "gain",
		DisplayName: "Linear Gain",
		Parameters:  []Parameter{{Name: "k", Default: 1, Domain: Domain{Min: 0, Max: 5, MinOpen: true}}},
		build:       func(p map[string]float64) System { return MemorylessGain{K: p["k"]} },
	},
	{
		Key:         "recursive",
		DisplayName: "Simple Discrete System",
		Parameters:  []Parameter{{Name: "alpha", Default: 0.5, Domain: Domain{Min: 0, Max: 1}}},
		build:       func(p map[string]float64) System { return CausalRecursive{Alpha: p["alpha"]} },
	},
}

// Kinds returns a copy of the selectable systems.
func Kinds() []Kind {
	res := make([]Kind, len(kinds))
	for i, k := range kinds {
		k.Parameters = append([]Parameter(nil), k.Parameters...)
		res[i] = k
	}
	return res
}

func lookup(key string) (Kind, bool) {
	for _, k := range kinds {
		if k.Key == key {
			return k, true
		}
	}
	return Kind{}, false
}

// New builds the system registered under key. Missing parameters take their
// defaults; values outside their domain and undeclared names are rejected
// with ErrInvalidParameter.
func New(key string, params map[string]float64) (System, error) {
	kind, ok := lookup(key)
	if !ok {
		keys := make([]string, len(kinds))
		for i, k := range kinds {
			keys[i] = k.Key
		}
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrUnknownKey, "system %q", key),
			"available systems: %s", strings.Join(keys, ", "))
	}

	resolved := make(map[string]float64, len(kind.Parameters))
	for _, p := range kind.Parameters {
		resolved[p.Name] = p.Default
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := params[name]
		decl, known := kind.parameter(name)
		if !known {
			return nil, errors.Wrapf(errors.ErrInvalidParameter, "system %q has no parameter %q", key, name)
		}
		if !decl.Domain.Contains(v) {
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrInvalidParameter, "system %q: %s = %g", key, name, v),
				"%s must lie in %s", name, decl.Domain)
		}
		resolved[name] = v
	}
	return kind.build(resolved), nil
}

// Run builds the system registered under key and applies it to x.
func Run(key string, params map[string]float64, x []float64) ([]float64, error) {
	s, err := New(key, params)
	if err != nil {
		return nil, err
	}
	return s.Apply(x), nil
}

func (k Kind) parameter(name string) (Parameter, bool) {
	for _, p := range k.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
