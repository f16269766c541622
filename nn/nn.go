// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a flat feed-forward network: layers with pluggable
// activation functions, a single weight vector and per-goroutine workspaces.
//
// Example:
//
//	net := nn.New()
//	_ = net.AddLayer(nil, true, 2)
//	_ = net.AddLayer(activation.NewFadingSine(1), true, 4)
//	_ = net.AddLayer(activation.NewFadingSine(1), false, 1)
//	_ = net.Finalize()
//	_ = net.Reset(nn.NguyenWidrow{}, rand.New(rand.NewSource(1)))
//	out, err := net.Compute([]float64{-0.99, 0.99})
package nn

import (
	"github.com/born-ml/xorresilient/internal/nn"
)

// Network is a layered feed-forward network.
type Network = nn.Network

// Layer is one layer of a Network.
type Layer = nn.Layer

// Workspace holds the buffers of one forward pass.
type Workspace = nn.Workspace

// New creates an empty network. Add layers, then call Finalize.
func New() *Network {
	return nn.New()
}

// Initialization

// Randomizer assigns initial weights.
type Randomizer = nn.Randomizer

// RangeRandomizer draws every weight uniformly from [Min, Max).
type RangeRandomizer = nn.RangeRandomizer

// NguyenWidrow scales random weights so hidden neurons cover the input range.
type NguyenWidrow = nn.NguyenWidrow

// Error

// ErrorCalculator accumulates squared errors over a dataset.
type ErrorCalculator = nn.ErrorCalculator

// Errors.
var (
	ErrNotFinalized = nn.ErrNotFinalized
	ErrFinalized    = nn.ErrFinalized
	ErrShape        = nn.ErrShape
)
