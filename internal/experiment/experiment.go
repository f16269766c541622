// Package experiment runs activation-function training experiments: build a
// small network, train it until it converges or a limit is hit, and collect
// the per-epoch error log and the final predictions.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/born-ml/xorresilient/internal/activation"
	"github.com/born-ml/xorresilient/internal/dataset"
	"github.com/born-ml/xorresilient/internal/nn"
	"github.com/born-ml/xorresilient/internal/optim"
	"github.com/born-ml/xorresilient/internal/train"
)

var log = logrus.WithField("component", "experiment")

// Defaults for Config fields left at zero by NewConfig.
const (
	DefaultHidden      = 4
	DefaultTargetError = 0.0001
	DefaultMaxEpochs   = 1000
	DefaultMaxDuration = 100 * time.Millisecond
)

// Config describes one experiment.
type Config struct {
	Title      string
	Activation activation.Function
	Dataset    *dataset.Set

	Optimizer       string       // optim.New name; empty selects "rprop"
	OptimizerParams optim.Params // zero values select the optimizer defaults

	Hidden      int           // hidden neurons
	TargetError float64       // stop once the training error is at or below this
	MaxEpochs   int           // stop once the epoch counter reaches this
	MaxDuration time.Duration // stop once training took this long; 0 disables
	Seed        int64         // weight initialization seed

	Train train.Config
}

// NewConfig returns a config with the default topology and limits.
func NewConfig(title string, fn activation.Function, set *dataset.Set) Config {
	return Config{
		Title:       title,
		Activation:  fn,
		Dataset:     set,
		Optimizer:   "rprop",
		Hidden:      DefaultHidden,
		TargetError: DefaultTargetError,
		MaxEpochs:   DefaultMaxEpochs,
		MaxDuration: DefaultMaxDuration,
		Seed:        1,
		Train:       train.DefaultConfig(),
	}
}

// Validate reports every problem with the config.
func (c *Config) Validate() error {
	var err error
	if c.Title == "" {
		err = multierr.Append(err, errors.New("title is required"))
	}
	if c.Activation == nil {
		err = multierr.Append(err, fmt.Errorf("%s: activation is required", c.Title))
	}
	if c.Dataset == nil {
		err = multierr.Append(err, fmt.Errorf("%s: dataset is required", c.Title))
	} else if dsErr := c.Dataset.Validate(); dsErr != nil {
		err = multierr.Append(err, dsErr)
	}
	if _, optErr := c.newOptimizer(); optErr != nil {
		err = multierr.Append(err, fmt.Errorf("%s: %w", c.Title, optErr))
	}
	if c.Hidden <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s: hidden neurons must be positive, got %d", c.Title, c.Hidden))
	}
	if c.TargetError < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: target error must not be negative, got %g", c.Title, c.TargetError))
	}
	if c.MaxEpochs <= 1 {
		err = multierr.Append(err, fmt.Errorf("%s: max epochs must be greater than 1, got %d", c.Title, c.MaxEpochs))
	}
	if c.MaxDuration < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: max duration must not be negative, got %s", c.Title, c.MaxDuration))
	}
	return err
}

func (c *Config) newOptimizer() (optim.Optimizer, error) {
	name := c.Optimizer
	if name == "" {
		name = "rprop"
	}
	return optim.New(name, c.OptimizerParams)
}

// StopReason tells why training ended.
type StopReason int

const (
	// StopConverged means the error reached the target.
	StopConverged StopReason = iota
	// StopTimeLimit means MaxDuration elapsed.
	StopTimeLimit
	// StopEpochLimit means MaxEpochs was reached.
	StopEpochLimit
	// StopCanceled means the context was canceled.
	StopCanceled
)

func (s StopReason) String() string {
	switch s {
	case StopConverged:
		return "converged"
	case StopTimeLimit:
		return "time-limit"
	case StopEpochLimit:
		return "epoch-limit"
	case StopCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("StopReason(%d)", int(s))
	}
}

// Epoch is one line of the training log.
type Epoch struct {
	Elapsed time.Duration
	Index   int
	Error   float64
}

// Prediction is the trained network's answer for one pair.
type Prediction struct {
	Input  []float64
	Ideal  []float64
	Actual []float64
}

// Result is the outcome of one experiment.
type Result struct {
	Title       string
	Activation  string
	Dataset     string
	Optimizer   string
	Network     string
	MaxEpochs   int
	Epochs      []Epoch
	Predictions []Prediction
	FinalError  float64
	Stop        StopReason
	Duration    time.Duration
}

// Converged reports whether the target error was reached.
func (r *Result) Converged() bool {
	return r.Stop == StopConverged
}

// Build creates the input(bias) → hidden(bias) → output network for cfg.
// Every layer gets its own clone of cfg.Activation.
func Build(cfg Config) (*nn.Network, error) {
	net := nn.New()
	if err := net.AddLayer(cfg.Activation, true, cfg.Dataset.InputSize()); err != nil {
		return nil, err
	}
	if err := net.AddLayer(cfg.Activation, true, cfg.Hidden); err != nil {
		return nil, err
	}
	if err := net.AddLayer(cfg.Activation, false, cfg.Dataset.IdealSize()); err != nil {
		return nil, err
	}
	if err := net.Finalize(); err != nil {
		return nil, err
	}
	if err := net.Reset(nn.NguyenWidrow{}, rand.New(rand.NewSource(cfg.Seed))); err != nil {
		return nil, err
	}
	return net, nil
}

// Run trains a fresh network for cfg.
//
// Training repeats iterations while the error is above the target, the
// elapsed time is below MaxDuration and the epoch counter (starting at 1 and
// incremented after each iteration) is below MaxEpochs, so at most
// MaxEpochs-1 iterations run.
//
// If ctx is canceled the partial result is returned together with ctx.Err().
// obs may be nil.
func Run(ctx context.Context, cfg Config, obs Observer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = nopObserver{}
	}

	net, err := Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Title, err)
	}

	opt, err := cfg.newOptimizer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Title, err)
	}

	trainer, err := train.NewPropagation(net, cfg.Dataset, opt, cfg.Train)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Title, err)
	}

	res := &Result{
		Title:      cfg.Title,
		Activation: cfg.Activation.Name(),
		Dataset:    cfg.Dataset.Name,
		Optimizer:  opt.Name(),
		Network:    net.String(),
		MaxEpochs:  cfg.MaxEpochs,
		Epochs:     make([]Epoch, 0, min(cfg.MaxEpochs, 1024)),
	}
	logger := log.WithFields(logrus.Fields{
		"experiment": cfg.Title,
		"activation": res.Activation,
		"dataset":    res.Dataset,
		"optimizer":  res.Optimizer,
	})
	logger.Infof("training %s network", res.Network)
	obs.OnStart(cfg)

	var runErr error
	start := time.Now()
	epoch := 1
	for {
		if err := ctx.Err(); err != nil {
			res.Stop = StopCanceled
			runErr = err
			break
		}
		if err := trainer.Iteration(); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Title, err)
		}

		e := Epoch{Elapsed: time.Since(start), Index: epoch, Error: trainer.Error()}
		res.Epochs = append(res.Epochs, e)
		obs.OnEpoch(cfg, e)
		logger.Debugf("epoch %d error %g", e.Index, e.Error)
		epoch++

		if e.Error <= cfg.TargetError {
			res.Stop = StopConverged
			break
		}
		if cfg.MaxDuration > 0 && time.Since(start) >= cfg.MaxDuration {
			res.Stop = StopTimeLimit
			break
		}
		if epoch >= cfg.MaxEpochs {
			res.Stop = StopEpochLimit
			break
		}
	}
	res.Duration = time.Since(start)
	if n := len(res.Epochs); n > 0 {
		res.FinalError = res.Epochs[n-1].Error
	}

	res.Predictions, err = predict(net, cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Title, err)
	}

	logger.WithFields(logrus.Fields{
		"epochs": len(res.Epochs),
		"error":  res.FinalError,
		"stop":   res.Stop.String(),
	}).Infof("finished in %s", res.Duration)
	obs.OnFinish(res)
	return res, runErr
}

func predict(net *nn.Network, set *dataset.Set) ([]Prediction, error) {
	preds := make([]Prediction, 0, set.Len())
	for _, p := range set.Pairs {
		out, err := net.Compute(p.Input)
		if err != nil {
			return nil, err
		}
		preds = append(preds, Prediction{Input: p.Input, Ideal: p.Ideal, Actual: out})
	}
	return preds, nil
}

// Calibrate performs one sigmoid/RPROP iteration on the zero-one XOR set so
// that code paths are warm before timed experiments start.
func Calibrate(seed int64) error {
	set, err := dataset.Builtin(dataset.ZeroOneXOR)
	if err != nil {
		return err
	}
	cfg := NewConfig("calibration", activation.NewSigmoid(), set)
	cfg.Seed = seed

	net, err := Build(cfg)
	if err != nil {
		return err
	}
	trainer, err := train.NewPropagation(net, set, optim.NewRPROP(optim.RPROPConfig{}), cfg.Train)
	if err != nil {
		return err
	}
	if err := trainer.Iteration(); err != nil {
		return err
	}
	log.Debugf("calibration error %g", trainer.Error())
	return nil
}
