// Package config loads the experiment list from YAML, environment variables
// and flags through viper and turns it into experiment configs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/born-ml/xorresilient/internal/activation"
	"github.com/born-ml/xorresilient/internal/dataset"
	"github.com/born-ml/xorresilient/internal/experiment"
	"github.com/born-ml/xorresilient/internal/optim"
	"github.com/born-ml/xorresilient/internal/parallel"
	"github.com/born-ml/xorresilient/internal/train"
)

// EnvPrefix prefixes every environment variable, e.g.
// XORRESILIENT_DEFAULTS_MAXEPOCHS.
const EnvPrefix = "XORRESILIENT"

// Optimizer selects and tunes the optimizer.
type Optimizer struct {
	Name          string  `mapstructure:"name" yaml:"name"`
	Type          string  `mapstructure:"type" yaml:"type,omitempty"`
	InitialUpdate float64 `mapstructure:"initialUpdate" yaml:"initialUpdate,omitempty"`
	MaxStep       float64 `mapstructure:"maxStep" yaml:"maxStep,omitempty"`
	LearningRate  float64 `mapstructure:"learningRate" yaml:"learningRate,omitempty"`
	Momentum      float64 `mapstructure:"momentum" yaml:"momentum,omitempty"`
}

func (o Optimizer) params() optim.Params {
	return optim.Params{
		Type:          o.Type,
		InitialUpdate: o.InitialUpdate,
		MaxStep:       o.MaxStep,
		LearningRate:  o.LearningRate,
		Momentum:      o.Momentum,
	}
}

// Parallel configures the gradient workers.
type Parallel struct {
	Enabled      bool `mapstructure:"enabled" yaml:"enabled"`
	Workers      int  `mapstructure:"workers" yaml:"workers"`
	MinChunkSize int  `mapstructure:"minChunkSize" yaml:"minChunkSize"`
}

// Defaults apply to every experiment that does not override them.
type Defaults struct {
	Hidden      int           `mapstructure:"hidden" yaml:"hidden"`
	TargetError float64       `mapstructure:"targetError" yaml:"targetError"`
	MaxEpochs   int           `mapstructure:"maxEpochs" yaml:"maxEpochs"`
	MaxDuration time.Duration `mapstructure:"maxDuration" yaml:"maxDuration"`
	Seed        int64         `mapstructure:"seed" yaml:"seed"`
	FixFlatSpot bool          `mapstructure:"fixFlatSpot" yaml:"fixFlatSpot"`
	Optimizer   Optimizer     `mapstructure:"optimizer" yaml:"optimizer"`
	Parallel    Parallel      `mapstructure:"parallel" yaml:"parallel"`
}

// Experiment is one entry of the experiment list. Zero-valued numeric
// fields and an empty optimizer name inherit from Defaults.
type Experiment struct {
	Title       string        `mapstructure:"title" yaml:"title"`
	Activation  string        `mapstructure:"activation" yaml:"activation"`
	Params      []float64     `mapstructure:"params" yaml:"params,omitempty"`
	Dataset     string        `mapstructure:"dataset" yaml:"dataset"`
	Hidden      int           `mapstructure:"hidden" yaml:"hidden,omitempty"`
	TargetError float64       `mapstructure:"targetError" yaml:"targetError,omitempty"`
	MaxEpochs   int           `mapstructure:"maxEpochs" yaml:"maxEpochs,omitempty"`
	MaxDuration time.Duration `mapstructure:"maxDuration" yaml:"maxDuration,omitempty"`
	Seed        int64         `mapstructure:"seed" yaml:"seed,omitempty"`
	Optimizer   Optimizer     `mapstructure:"optimizer" yaml:"optimizer,omitempty"`
}

// Config is the whole configuration file.
type Config struct {
	Defaults    Defaults     `mapstructure:"defaults" yaml:"defaults"`
	Experiments []Experiment `mapstructure:"experiments" yaml:"experiments"`
}

// DefaultExperiments is the classic comparison: fading sine against the
// usual activations, all on XOR.
func DefaultExperiments() []Experiment {
	return []Experiment{
		{Title: "Fading Sine", Activation: "fading-sine", Params: []float64{1}, Dataset: dataset.BipolarXOR},
		{Title: "Sigmoid", Activation: "sigmoid", Dataset: dataset.ZeroOneXOR},
		{Title: "Bipolar Sigmoid", Activation: "bipolar-steepened-sigmoid", Dataset: dataset.BipolarXOR},
		{Title: "Logarithm", Activation: "log", Dataset: dataset.BipolarXOR},
		{Title: "Hyperbolic Tangent", Activation: "tanh", Dataset: dataset.BipolarXOR},
		{Title: "Elliott Symmetric", Activation: "elliott-symmetric", Dataset: dataset.BipolarXOR},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: Defaults{
			Hidden:      experiment.DefaultHidden,
			TargetError: experiment.DefaultTargetError,
			MaxEpochs:   experiment.DefaultMaxEpochs,
			MaxDuration: experiment.DefaultMaxDuration,
			Seed:        1,
			FixFlatSpot: true,
			Optimizer:   Optimizer{Name: "rprop"},
			Parallel:    Parallel{MinChunkSize: parallel.DefaultConfig().MinChunkSize},
		},
		Experiments: DefaultExperiments(),
	}
}

// SetDefaults registers the built-in defaults on v so that environment
// variables and flags can override single keys.
func SetDefaults(v *viper.Viper) {
	d := Default().Defaults
	v.SetDefault("defaults.hidden", d.Hidden)
	v.SetDefault("defaults.targetError", d.TargetError)
	v.SetDefault("defaults.maxEpochs", d.MaxEpochs)
	v.SetDefault("defaults.maxDuration", d.MaxDuration)
	v.SetDefault("defaults.seed", d.Seed)
	v.SetDefault("defaults.fixFlatSpot", d.FixFlatSpot)
	v.SetDefault("defaults.optimizer.name", d.Optimizer.Name)
	v.SetDefault("defaults.optimizer.type", d.Optimizer.Type)
	v.SetDefault("defaults.parallel.enabled", d.Parallel.Enabled)
	v.SetDefault("defaults.parallel.workers", d.Parallel.Workers)
	v.SetDefault("defaults.parallel.minChunkSize", d.Parallel.MinChunkSize)
}

// NewViper returns a viper instance with defaults and environment binding.
// When path is not empty the file is read as well.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

// Load decodes v. An empty experiment list selects DefaultExperiments.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Experiments) == 0 {
		cfg.Experiments = DefaultExperiments()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile is NewViper followed by Load.
func LoadFile(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return Load(v)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	d := c.Defaults
	if d.Hidden <= 0 {
		err = multierr.Append(err, fmt.Errorf("defaults.hidden must be positive, got %d", d.Hidden))
	}
	if d.TargetError < 0 {
		err = multierr.Append(err, fmt.Errorf("defaults.targetError must not be negative, got %g", d.TargetError))
	}
	if d.MaxEpochs <= 1 {
		err = multierr.Append(err, fmt.Errorf("defaults.maxEpochs must be greater than 1, got %d", d.MaxEpochs))
	}
	if d.MaxDuration < 0 {
		err = multierr.Append(err, fmt.Errorf("defaults.maxDuration must not be negative, got %s", d.MaxDuration))
	}
	if d.Parallel.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("defaults.parallel.workers must not be negative, got %d", d.Parallel.Workers))
	}
	if _, oerr := optim.New(d.Optimizer.Name, d.Optimizer.params()); oerr != nil {
		err = multierr.Append(err, fmt.Errorf("defaults.optimizer: %w", oerr))
	}

	seen := map[string]bool{}
	for i, e := range c.Experiments {
		prefix := fmt.Sprintf("experiments[%d]", i)
		if e.Title == "" {
			err = multierr.Append(err, fmt.Errorf("%s: title is required", prefix))
		} else {
			if seen[e.Title] {
				err = multierr.Append(err, fmt.Errorf("%s: duplicate title %q", prefix, e.Title))
			}
			seen[e.Title] = true
		}
		if _, aerr := activation.New(e.Activation, e.Params...); aerr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", prefix, aerr))
		}
		if e.Dataset == "" {
			err = multierr.Append(err, fmt.Errorf("%s: dataset is required", prefix))
		}
		if e.Optimizer.Name != "" {
			if _, oerr := optim.New(e.Optimizer.Name, e.Optimizer.params()); oerr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", prefix, oerr))
			}
		}
	}
	return err
}

// ErrNoMatch is returned when a filter selects no experiment.
var ErrNoMatch = errors.New("no experiment matches")

// Select keeps the experiments whose title or activation name matches one of
// names, case-insensitively. An empty names list keeps everything.
func (c *Config) Select(names []string) ([]Experiment, error) {
	if len(names) == 0 {
		return c.Experiments, nil
	}
	var out []Experiment
	for _, e := range c.Experiments {
		for _, n := range names {
			n = strings.TrimSpace(n)
			if strings.EqualFold(n, e.Title) || strings.EqualFold(n, e.Activation) {
				out = append(out, e)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(names, ","), ErrNoMatch)
	}
	return out, nil
}

// Build turns the selected experiments into experiment configs.
func (c *Config) Build(names []string) ([]experiment.Config, error) {
	selected, err := c.Select(names)
	if err != nil {
		return nil, err
	}

	cfgs := make([]experiment.Config, 0, len(selected))
	var berr error
	for _, e := range selected {
		cfg, err := c.build(e)
		if err != nil {
			berr = multierr.Append(berr, fmt.Errorf("%s: %w", e.Title, err))
			continue
		}
		cfgs = append(cfgs, cfg)
	}
	if berr != nil {
		return nil, berr
	}
	return cfgs, nil
}

func (c *Config) build(e Experiment) (experiment.Config, error) {
	fn, err := activation.New(e.Activation, e.Params...)
	if err != nil {
		return experiment.Config{}, err
	}
	set, err := dataset.Resolve(e.Dataset)
	if err != nil {
		return experiment.Config{}, err
	}

	d := c.Defaults
	cfg := experiment.NewConfig(e.Title, fn, set)
	cfg.Hidden = pick(e.Hidden, d.Hidden)
	cfg.TargetError = pick(e.TargetError, d.TargetError)
	cfg.MaxEpochs = pick(e.MaxEpochs, d.MaxEpochs)
	cfg.MaxDuration = pick(e.MaxDuration, d.MaxDuration)
	cfg.Seed = pick(e.Seed, d.Seed)

	opt := d.Optimizer
	if e.Optimizer.Name != "" {
		opt = e.Optimizer
	}
	cfg.Optimizer = opt.Name
	cfg.OptimizerParams = opt.params()

	cfg.Train = train.Config{
		FixFlatSpot: d.FixFlatSpot,
		Parallel:    parallel.Sequential(),
	}
	if d.Parallel.Enabled {
		pc := parallel.DefaultConfig()
		pc.Enabled = true
		if d.Parallel.Workers > 0 {
			pc.NumWorkers = d.Parallel.Workers
		}
		if d.Parallel.MinChunkSize > 0 {
			pc.MinChunkSize = d.Parallel.MinChunkSize
		}
		cfg.Train.Parallel = pc
	}
	return cfg, nil
}

func pick[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
