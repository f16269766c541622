// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers that update a flat weight vector from
// its gradient.
//
// This package contains:
//   - RPROP: resilient propagation in four variants (iRPROP+ is the default)
//   - SGD: classic backpropagation with momentum
//   - Adam: adaptive moment estimation
//
// Example:
//
//	opt := optim.NewRPROP(optim.RPROPConfig{Type: optim.IRPROPMinus})
//	for {
//	    grads, loss := gradients(weights)
//	    if err := opt.Step(weights, grads, loss); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"github.com/born-ml/xorresilient/internal/optim"
)

// Optimizer updates weights in place from gradients of the error.
type Optimizer = optim.Optimizer

// Params is the union of settings accepted by New.
type Params = optim.Params

// New creates an optimizer by name ("rprop", "backprop" or "adam").
func New(name string, p Params) (Optimizer, error) {
	return optim.New(name, p)
}

// Names lists the optimizers New understands.
func Names() []string {
	return optim.Names()
}

// RPROP (Resilient Propagation)

// RPROP is the resilient propagation optimizer.
type RPROP = optim.RPROP

// RPROPConfig configures RPROP.
type RPROPConfig = optim.RPROPConfig

// RPROPType selects the RPROP variant.
type RPROPType = optim.RPROPType

// RPROP variants.
const (
	IRPROPPlus  = optim.IRPROPPlus
	IRPROPMinus = optim.IRPROPMinus
	RPROPPlus   = optim.RPROPPlus
	RPROPMinus  = optim.RPROPMinus
)

// NewRPROP creates a new RPROP optimizer.
func NewRPROP(config RPROPConfig) *RPROP {
	return optim.NewRPROP(config)
}

// ParseRPROPType parses "irprop+", "irprop-", "rprop+" or "rprop-".
func ParseRPROPType(s string) (RPROPType, error) {
	return optim.ParseRPROPType(s)
}

// SGD (Backpropagation)

// SGD is gradient descent with momentum.
type SGD = optim.SGD

// SGDConfig configures SGD.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Adam (Adaptive Moment Estimation)

// Adam is the Adam optimizer.
type Adam = optim.Adam

// AdamConfig configures Adam.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// Errors.
var (
	ErrSizeMismatch     = optim.ErrSizeMismatch
	ErrUnknownOptimizer = optim.ErrUnknownOptimizer
)
