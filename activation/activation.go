// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package activation provides the activation functions that plug into
// network layers, including the fading sine: sin(x/period), damped by
// 1/|x/period| once |x/period| exceeds π.
//
// Example:
//
//	fn := activation.NewFadingSine(1)
//	values := []float64{0.5, 4}
//	fn.Apply(values, 0, len(values))
//
// Functions can also be built by name:
//
//	fn, err := activation.New("fading-sine", 2) // period 2
package activation

import (
	"github.com/born-ml/xorresilient/internal/activation"
)

// Function is an activation function pluggable into a network layer.
type Function = activation.Function

// FlatSpotter is implemented by functions whose derivative vanishes at the
// extremes and that want a constant added during training.
type FlatSpotter = activation.FlatSpotter

// Constructor builds a function with its default parameters.
type Constructor = activation.Constructor

// FadingSine is the fading sine activation.
type FadingSine = activation.FadingSine

// NewFadingSine creates a fading sine with the given period.
func NewFadingSine(period float64) *FadingSine {
	return activation.NewFadingSine(period)
}

// Library functions

// Sigmoid is the logistic function.
type Sigmoid = activation.Sigmoid

// NewSigmoid creates a sigmoid.
func NewSigmoid() *Sigmoid { return activation.NewSigmoid() }

// BipolarSteepenedSigmoid maps to (-1, 1) with slope 4.9.
type BipolarSteepenedSigmoid = activation.BipolarSteepenedSigmoid

// NewBipolarSteepenedSigmoid creates a bipolar steepened sigmoid.
func NewBipolarSteepenedSigmoid() *BipolarSteepenedSigmoid {
	return activation.NewBipolarSteepenedSigmoid()
}

// Tanh is the hyperbolic tangent.
type Tanh = activation.Tanh

// NewTanh creates a hyperbolic tangent.
func NewTanh() *Tanh { return activation.NewTanh() }

// Log is the symmetric logarithm.
type Log = activation.Log

// NewLog creates a symmetric logarithm.
func NewLog() *Log { return activation.NewLog() }

// ElliottSymmetric is x·s/(1+|x·s|).
type ElliottSymmetric = activation.ElliottSymmetric

// NewElliottSymmetric creates an Elliott symmetric function with slope 1.
func NewElliottSymmetric() *ElliottSymmetric { return activation.NewElliottSymmetric() }

// Sin is the plain sine.
type Sin = activation.Sin

// NewSin creates a sine.
func NewSin() *Sin { return activation.NewSin() }

// Registry

// New builds the function registered under name and applies params by index.
func New(name string, params ...float64) (Function, error) {
	return activation.New(name, params...)
}

// Register adds a constructor under name.
func Register(name string, ctor Constructor) {
	activation.Register(name, ctor)
}

// Names returns all registered names in sorted order.
func Names() []string {
	return activation.Names()
}

// FlatSpot returns the flat-spot constant of fn, or 0.
func FlatSpot(fn Function) float64 {
	return activation.FlatSpot(fn)
}

// Errors.
var (
	ErrInvalidParameterIndex = activation.ErrInvalidParameterIndex
	ErrUnknownActivation     = activation.ErrUnknownActivation
)
