// Package nn implements the flat feed-forward network that hosts activation
// functions during training.
//
// This package provides:
//   - Layer: neuron count, bias flag and an owned activation function
//   - Network: layers plus one flat weight vector, forward pass
//   - Workspace: per-goroutine buffers for forward and backward passes
//   - Randomizers: range and Nguyen-Widrow weight initialization
//   - ErrorCalculator: mean squared error accumulation
//
// Weights for the connection from layer l to layer l+1 form a row-major block
// of count(l+1) rows and count(l)+bias(l) columns inside the flat vector. The
// bias neuron is the last column and always outputs 1.
package nn

import (
	"errors"

	"github.com/born-ml/xorresilient/internal/activation"
)

var (
	// ErrNotFinalized is returned when a network is used before Finalize.
	ErrNotFinalized = errors.New("network not finalized")

	// ErrFinalized is returned when layers are added after Finalize.
	ErrFinalized = errors.New("network already finalized")

	// ErrShape is returned for vectors whose length does not match the network.
	ErrShape = errors.New("shape mismatch")
)

// Layer is one layer of neurons.
//
// The activation function produces this layer's outputs from its weighted
// sums. The input layer's function is kept for structure only; inputs are
// copied in unchanged.
type Layer struct {
	count      int
	bias       bool
	activation activation.Function
}

// Count returns the number of neurons, excluding the bias neuron.
func (l *Layer) Count() int {
	return l.count
}

// HasBias reports whether the layer feeds a bias neuron to the next layer.
func (l *Layer) HasBias() bool {
	return l.bias
}

// Activation returns the layer's own activation function (may be nil for the
// input layer).
func (l *Layer) Activation() activation.Function {
	return l.activation
}

// total returns the neuron count including the bias neuron.
func (l *Layer) total() int {
	if l.bias {
		return l.count + 1
	}
	return l.count
}
