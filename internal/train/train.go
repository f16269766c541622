// Package train runs gradient-based training of an nn.Network over a dataset.
package train

import (
	"fmt"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/xorresilient/internal/dataset"
	"github.com/born-ml/xorresilient/internal/nn"
	"github.com/born-ml/xorresilient/internal/optim"
	"github.com/born-ml/xorresilient/internal/parallel"
)

// Trainer performs training iterations.
type Trainer interface {
	// Iteration runs one epoch over the whole dataset.
	Iteration() error
	// Error returns the training error measured during the last iteration.
	Error() float64
	// Epoch returns the number of completed iterations.
	Epoch() int
}

// Config controls a Propagation trainer.
type Config struct {
	// FixFlatSpot adds each function's flat-spot constant to its derivative.
	FixFlatSpot bool

	// Parallel splits the dataset across gradient workers.
	Parallel parallel.Config
}

// DefaultConfig enables flat-spot fixing and runs sequentially.
func DefaultConfig() Config {
	return Config{
		FixFlatSpot: true,
		Parallel:    parallel.Sequential(),
	}
}

// Propagation is batch propagation training: gradients of the whole set are
// summed and handed to an optimizer once per iteration. With an RPROP
// optimizer this is resilient propagation; with SGD it is classic
// backpropagation.
//
// Example:
//
//	trainer, err := train.NewPropagation(net, set, optim.NewRPROP(optim.RPROPConfig{}), train.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for {
//	    if err := trainer.Iteration(); err != nil {
//	        return err
//	    }
//	    if trainer.Error() <= 0.0001 {
//	        break
//	    }
//	}
type Propagation struct {
	net     *nn.Network
	set     *dataset.Set
	opt     optim.Optimizer
	cfg     Config
	workers []*gradientWorker
	grads   []float64
	err     float64
	epoch   int
}

// NewPropagation checks that set fits net and prepares one gradient worker
// per parallel chunk.
func NewPropagation(net *nn.Network, set *dataset.Set, opt optim.Optimizer, cfg Config) (*Propagation, error) {
	if !net.Finalized() {
		return nil, nn.ErrNotFinalized
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	var err error
	if set.InputSize() != net.InputCount() {
		err = multierr.Append(err, fmt.Errorf("dataset %q has %d inputs, network has %d: %w",
			set.Name, set.InputSize(), net.InputCount(), nn.ErrShape))
	}
	if set.IdealSize() != net.OutputCount() {
		err = multierr.Append(err, fmt.Errorf("dataset %q has %d ideal values, network has %d outputs: %w",
			set.Name, set.IdealSize(), net.OutputCount(), nn.ErrShape))
	}
	for i, l := range net.Layers()[1:] {
		if !l.Activation().HasDerivative() {
			err = multierr.Append(err, fmt.Errorf("layer %d: %s has no derivative", i+1, l.Activation().Name()))
		}
	}
	if err != nil {
		return nil, err
	}

	workers := make([]*gradientWorker, parallel.Chunks(set.Len(), cfg.Parallel))
	for i := range workers {
		workers[i] = newGradientWorker(net, cfg.FixFlatSpot)
	}

	return &Propagation{
		net:     net,
		set:     set,
		opt:     opt,
		cfg:     cfg,
		workers: workers,
		grads:   make([]float64, net.WeightCount()),
	}, nil
}

// Iteration computes gradients and error over the set, then steps the
// optimizer.
func (p *Propagation) Iteration() error {
	grads, mse, err := p.Gradients()
	if err != nil {
		return err
	}
	if err := p.opt.Step(p.net.Weights(), grads, mse); err != nil {
		return fmt.Errorf("epoch %d: %w", p.epoch+1, err)
	}
	p.err = mse
	p.epoch++
	return nil
}

// Gradients returns ∂E/∂w summed over the set, for E = ½·SSE, together
// with the MSE, without changing any weight. The returned slice is reused by
// the next call.
func (p *Propagation) Gradients() ([]float64, float64, error) {
	errs := make([]error, len(p.workers))
	parallel.ForChunks(p.set.Len(), func(c, start, end int) {
		w := p.workers[c]
		w.reset()
		errs[c] = w.run(p.set.Pairs[start:end])
	}, p.cfg.Parallel)
	if err := multierr.Combine(errs...); err != nil {
		return nil, 0, err
	}

	clear(p.grads)
	var total nn.ErrorCalculator
	for _, w := range p.workers {
		floats.Add(p.grads, w.grads)
		total.Merge(&w.errors)
	}
	return p.grads, total.MSE(), nil
}

// Error returns the MSE measured during the last iteration, before its
// weight update.
func (p *Propagation) Error() float64 {
	return p.err
}

// Epoch returns the number of completed iterations.
func (p *Propagation) Epoch() int {
	return p.epoch
}

// Optimizer returns the optimizer driving this trainer.
func (p *Propagation) Optimizer() optim.Optimizer {
	return p.opt
}
