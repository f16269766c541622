// Package optim implements optimization algorithms over flat weight vectors.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - RPROP: Resilient propagation (RPROP+, RPROP-, iRPROP+, iRPROP-)
//   - SGD: Gradient descent with momentum (classic backpropagation)
//   - Adam: Adaptive Moment Estimation
//
// Gradients are ∂E/∂w of the training error E. Optimizers move the weights
// against them, in place.
//
// Example usage:
//
//	optimizer := optim.NewRPROP(optim.RPROPConfig{})
//
//	for epoch := range epochs {
//	    loss, grads := computeGradients(net, data)
//	    if err := optimizer.Step(net.Weights(), grads, loss); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when weights and gradients disagree in length,
// or when the weight vector changes size between steps.
var ErrSizeMismatch = errors.New("optimizer size mismatch")

// ErrUnknownOptimizer is returned by New for unsupported names.
var ErrUnknownOptimizer = errors.New("unknown optimizer")

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to weights in place.
	//
	// grads holds ∂E/∂w for every weight; loss is the training error measured
	// with the current weights (before this update).
	Step(weights, grads []float64, loss float64) error

	// Name returns the optimizer name used in reports.
	Name() string
}

// state tracks the vector length an optimizer was sized for.
type state struct {
	size int
}

// check validates lengths and reports whether per-weight state must be
// allocated (first step).
func (s *state) check(weights, grads []float64) (bool, error) {
	if len(weights) != len(grads) {
		return false, fmt.Errorf("%d weights, %d gradients: %w", len(weights), len(grads), ErrSizeMismatch)
	}
	if s.size == 0 {
		s.size = len(weights)
		return true, nil
	}
	if s.size != len(weights) {
		return false, fmt.Errorf("sized for %d weights, got %d: %w", s.size, len(weights), ErrSizeMismatch)
	}
	return false, nil
}

// Params is the union of optimizer settings used by New.
// Zero values select each optimizer's defaults.
type Params struct {
	Type          string  // RPROP variant: "irprop+", "irprop-", "rprop+", "rprop-"
	InitialUpdate float64 // RPROP initial step
	MaxStep       float64 // RPROP maximum step
	LearningRate  float64 // SGD and Adam
	Momentum      float64 // SGD
	Beta1         float64 // Adam
	Beta2         float64 // Adam
	Epsilon       float64 // Adam
}

// Names lists the optimizers New understands.
func Names() []string {
	return []string{"rprop", "backprop", "adam"}
}

// New creates an optimizer by name.
func New(name string, p Params) (Optimizer, error) {
	switch name {
	case "rprop", "resilient":
		typ, err := ParseRPROPType(p.Type)
		if err != nil {
			return nil, err
		}
		return NewRPROP(RPROPConfig{
			Type:          typ,
			InitialUpdate: p.InitialUpdate,
			MaxStep:       p.MaxStep,
		}), nil
	case "backprop", "sgd":
		return NewSGD(SGDConfig{LR: p.LearningRate, Momentum: p.Momentum}), nil
	case "adam":
		return NewAdam(AdamConfig{
			LR:    p.LearningRate,
			Betas: [2]float64{p.Beta1, p.Beta2},
			Eps:   p.Epsilon,
		}), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownOptimizer)
	}
}
