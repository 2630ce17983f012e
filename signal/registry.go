package signal

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aroproduction/commviz/internal/errors"
)

// Factory builds a canonical signal from a complete parameter record.
type Factory func(p Params) (Signal, error)

// Entry is one registered signal.
type Entry struct {
	// Stable lookup key, e.g. "unit_step"
	Key string
	// Parameters the factory accepts and their defaults
	Defaults Params
	// Constructor
	Build Factory
}

// DisplayName derives the display name from the key: underscores become
// spaces and each word is title cased.
func (e Entry) DisplayName() string {
	return displayName(e.Key)
}

var titleCaser = cases.Title(language.English)

func displayName(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// registry is populated once at package initialization and only read
// afterwards, so concurrent lookups need no locking.
var registry = newRegistry([]Entry{
	{
		Key:      "unit_impulse",
		Defaults: Params{"tolerance": DefaultImpulseTolerance},
		Build:    func(p Params) (Signal, error) { return UnitImpulse(p["tolerance"]), nil },
	},
	{
		Key:      "unit_step",
		Defaults: Params{"constant": 1},
		Build:    func(p Params) (Signal, error) { return UnitStep(p["constant"]), nil },
	},
	{
		Key:   "ramp",
		Build: func(Params) (Signal, error) { return Ramp(), nil },
	},
	{
		Key:      "exponential",
		Defaults: Params{"a": 1},
		Build:    func(p Params) (Signal, error) { return Exponential(p["a"]), nil },
	},
	{
		Key:      "sinusoid",
		Defaults: Params{"amplitude": 1, "frequency": 1, "phase": 0},
		Build: func(p Params) (Signal, error) {
			return Sinusoid(p["amplitude"], p["frequency"], p["phase"]), nil
		},
	},
	{
		Key:      "sinc",
		Defaults: Params{"amplitude": 1},
		Build:    func(p Params) (Signal, error) { return Sinc(p["amplitude"]), nil },
	},
	{
		Key:   "signum",
		Build: func(Params) (Signal, error) { return Signum(), nil },
	},
	{
		Key:      "rectangular",
		Defaults: Params{"start": -1, "end": 1, "amplitude": 1},
		Build: func(p Params) (Signal, error) {
			return Rectangular(p["start"], p["end"], p["amplitude"]), nil
		},
	},
	{
		Key:      "triangular",
		Defaults: Params{"start": 0, "end": 1, "amplitude": 1},
		Build: func(p Params) (Signal, error) {
			return Triangular(p["start"], p["end"], p["amplitude"])
		},
	},
})

type table struct {
	entries []Entry
	index   map[string]int
}

func newRegistry(entries []Entry) table {
	t := table{entries: entries, index: make(map[string]int, len(entries))}
	for i, e := range entries {
		if _, dup := t.index[e.Key]; dup {
			panic("signal: duplicate registry key " + e.Key)
		}
		t.index[e.Key] = i
	}
	return t
}

// Keys returns the registered keys in registration order.
func Keys() []string {
	res := make([]string, len(registry.entries))
	for i, e := range registry.entries {
		res[i] = e.Key
	}
	return res
}

// AvailableSignals returns the display names of every registered signal,
// in registration order.
func AvailableSignals() []string {
	res := make([]string, len(registry.entries))
	for i, e := range registry.entries {
		res[i] = e.DisplayName()
	}
	return res
}

// Lookup returns the entry registered under key.
func Lookup(key string) (Entry, bool) {
	i, ok := registry.index[key]
	if !ok {
		return Entry{}, false
	}
	e := registry.entries[i]
	e.Defaults = e.Defaults.Clone()
	return e, true
}

// Build constructs the signal registered under key. overrides replace the
// entry's defaults; names the entry does not declare are rejected.
func Build(key string, overrides Params) (Signal, error) {
	e, ok := Lookup(key)
	if !ok {
		return Signal{}, errors.WithHintf(
			errors.Wrapf(errors.ErrUnknownKey, "signal %q", key),
			"available signals: %s", strings.Join(Keys(), ", "))
	}
	p := e.Defaults
	for name, v := range overrides {
		if _, known := p[name]; !known {
			return Signal{}, errors.WithHintf(
				errors.Wrapf(errors.ErrInvalidParameter, "signal %q has no parameter %q", key, name),
				"accepted parameters: %s", strings.Join(paramNames(e.Defaults), ", "))
		}
		p[name] = v
	}
	return e.Build(p)
}

// Modes returns the two display modes a sampled signal can be shown in.
func Modes() []Mode {
	return []Mode{Continuous, Discrete}
}

// Mode is how a sampled signal is displayed.
type Mode string

const (
	// Continuous signals are drawn as lines over a fine axis.
	Continuous Mode = "Continuous"
	// Discrete signals are drawn as stems over a coarse axis.
	Discrete Mode = "Discrete"
)

func paramNames(p Params) []string {
	if len(p) == 0 {
		return []string{"(none)"}
	}
	res := make([]string, 0, len(p))
	for k := range p {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
