// Package config loads commviz settings with Viper.
//
// Sources in increasing precedence: defaults, an optional config file
// (toml or yaml), and COMMVIZ_* environment variables, e.g.
// COMMVIZ_PROPERTIES_STABILITY_BOUND=1e3.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/aroproduction/commviz/internal/errors"
)

// Config is the full commviz configuration.
type Config struct {
	TimeAxis    TimeAxisConfig    `mapstructure:"timeaxis"`
	Signal      SignalConfig      `mapstructure:"signal"`
	Properties  PropertiesConfig  `mapstructure:"properties"`
	Impulse     ImpulseConfig     `mapstructure:"impulse"`
	Convolution ConvolutionConfig `mapstructure:"convolution"`
	Log         LogConfig         `mapstructure:"log"`
}

// TimeAxisConfig holds the sampling resolution policy.
type TimeAxisConfig struct {
	// Upper bounds of interval length for each resolution tier
	TierSpans []float64 `mapstructure:"tier_spans"`
	// Sample counts for each tier, same length as TierSpans
	TierSamples []int `mapstructure:"tier_samples"`
	// Sample count for intervals longer than the last tier
	MaxSamples int `mapstructure:"max_samples"`
	// Spacing used when an axis is built by spacing and none is given
	DefaultDt float64 `mapstructure:"default_dt"`
	// Discrete mode: points per unit of time and an upper limit
	DiscretePointsPerUnit int `mapstructure:"discrete_points_per_unit"`
	DiscreteMaxPoints     int `mapstructure:"discrete_max_points"`
}

// SignalConfig holds evaluation settings for canonical signals.
type SignalConfig struct {
	ImpulseTolerance float64 `mapstructure:"impulse_tolerance"`
}

// PropertiesConfig holds the LTI verifier settings.
type PropertiesConfig struct {
	StabilityBound float64 `mapstructure:"stability_bound"`
	Tolerance      float64 `mapstructure:"tolerance"`
}

// ImpulseConfig holds impulse-response kernel defaults.
type ImpulseConfig struct {
	DefaultLength int     `mapstructure:"default_length"`
	DefaultAlpha  float64 `mapstructure:"default_alpha"`
}

// ConvolutionConfig selects the convolution method.
type ConvolutionConfig struct {
	Method       string `mapstructure:"method"`
	FFTThreshold int    `mapstructure:"fft_threshold"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("timeaxis.tier_spans", []float64{1, 10, 100})
	v.SetDefault("timeaxis.tier_samples", []int{1000, 2000, 5000})
	v.SetDefault("timeaxis.max_samples", 10000) // bounds every vector in the pipeline
	v.SetDefault("timeaxis.default_dt", 0.01)
	v.SetDefault("timeaxis.discrete_points_per_unit", 10)
	v.SetDefault("timeaxis.discrete_max_points", 100)

	v.SetDefault("signal.impulse_tolerance", 1e-8)

	v.SetDefault("properties.stability_bound", 1e6)
	v.SetDefault("properties.tolerance", 1e-9)

	v.SetDefault("impulse.default_length", 101)
	v.SetDefault("impulse.default_alpha", 0.5)

	v.SetDefault("convolution.method", "direct")
	v.SetDefault("convolution.fft_threshold", 4096)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}

// New returns a Viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("COMMVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults are static; failing here is a programming error
		panic(err)
	}
	return cfg
}

// Load reads defaults and environment variables.
func Load() (*Config, error) {
	return LoadWithViper(New())
}

// LoadFromFile loads configuration from a specific file path on top of
// defaults and environment variables.
func LoadFromFile(path string) (*Config, error) {
	v := New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would make the pipeline ill-defined.
func (c *Config) Validate() error {
	ta := c.TimeAxis
	if len(ta.TierSpans) != len(ta.TierSamples) {
		return errors.Wrapf(errors.ErrInvalidParameter,
			"timeaxis: %d tier spans but %d tier sample counts", len(ta.TierSpans), len(ta.TierSamples))
	}
	for i := range ta.TierSpans {
		if ta.TierSpans[i] <= 0 || ta.TierSamples[i] < 2 {
			return errors.Wrapf(errors.ErrInvalidParameter, "timeaxis: tier %d must have span > 0 and samples >= 2", i)
		}
		if i > 0 && ta.TierSpans[i] <= ta.TierSpans[i-1] {
			return errors.Wrapf(errors.ErrInvalidParameter, "timeaxis: tier spans must increase")
		}
	}
	switch {
	case ta.MaxSamples < 2:
		return errors.Wrapf(errors.ErrInvalidParameter, "timeaxis.max_samples = %d", ta.MaxSamples)
	case ta.DefaultDt <= 0:
		return errors.Wrapf(errors.ErrInvalidParameter, "timeaxis.default_dt = %g", ta.DefaultDt)
	case ta.DiscretePointsPerUnit <= 0 || ta.DiscreteMaxPoints < 2:
		return errors.Wrapf(errors.ErrInvalidParameter, "timeaxis: discrete resolution must be positive")
	case c.Signal.ImpulseTolerance < 0:
		return errors.Wrapf(errors.ErrInvalidParameter, "signal.impulse_tolerance = %g", c.Signal.ImpulseTolerance)
	case c.Properties.StabilityBound <= 0:
		return errors.Wrapf(errors.ErrInvalidParameter, "properties.stability_bound = %g", c.Properties.StabilityBound)
	case c.Properties.Tolerance < 0:
		return errors.Wrapf(errors.ErrInvalidParameter, "properties.tolerance = %g", c.Properties.Tolerance)
	case c.Impulse.DefaultLength <= 0:
		return errors.Wrapf(errors.ErrInvalidParameter, "impulse.default_length = %d", c.Impulse.DefaultLength)
	case c.Convolution.Method != "direct" && c.Convolution.Method != "fft" && c.Convolution.Method != "auto":
		return errors.Wrapf(errors.ErrInvalidParameter, "convolution.method = %q", c.Convolution.Method)
	case c.Convolution.FFTThreshold <= 0:
		return errors.Wrapf(errors.ErrInvalidParameter, "convolution.fft_threshold = %d", c.Convolution.FFTThreshold)
	}
	return nil
}
