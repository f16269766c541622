// Package activation implements element-wise activation functions for the
// feed-forward networks in internal/nn.
//
// Every function follows the same contract:
//   - Apply transforms a sub-range of a caller-owned buffer in place
//   - Derivative returns the slope given the pre-activation sum and the
//     already computed activation value
//   - Clone returns an independent copy so each layer (and each gradient
//     worker) owns its own instance
//
// Functions carry at most a handful of tunable parameters, addressed by index.
package activation

import (
	"errors"
	"fmt"
)

// ErrInvalidParameterIndex is returned when a parameter index is out of range.
var ErrInvalidParameterIndex = errors.New("invalid parameter index")

// ErrUnknownActivation is returned by New for unregistered names.
var ErrUnknownActivation = errors.New("unknown activation")

// Function is an activation function pluggable into a network layer.
type Function interface {
	// Name returns the registry name of the function (e.g. "fading-sine").
	Name() string

	// Apply transforms values[start:start+count] in place.
	//
	// The range is clipped to the buffer: indices past len(values) are
	// skipped and a negative start is treated as 0. Nothing is reported
	// for out-of-range requests.
	Apply(values []float64, start, count int)

	// Derivative returns the derivative at the given pre-activation value.
	// after is the activation value Apply produced for before; functions
	// whose derivative is cheaper in terms of the output use it.
	Derivative(before, after float64) float64

	// Clone returns an independent copy with the same parameters.
	Clone() Function

	// ParamNames returns the names of the tunable parameters, by index.
	ParamNames() []string

	// Params returns a copy of the parameter values, by index.
	Params() []float64

	// SetParam replaces the parameter at index.
	SetParam(index int, value float64) error

	// HasDerivative reports whether Derivative can be used for training.
	HasDerivative() bool
}

// FlatSpotter is implemented by functions whose derivative vanishes near the
// saturated ends. Trainers add FlatSpot() to the derivative when flat-spot
// fixing is enabled.
type FlatSpotter interface {
	FlatSpot() float64
}

// FlatSpot returns the flat-spot constant of fn, or 0.
func FlatSpot(fn Function) float64 {
	if fs, ok := fn.(FlatSpotter); ok {
		return fs.FlatSpot()
	}
	return 0
}

// Param returns the parameter of fn at index.
func Param(fn Function, index int) (float64, error) {
	params := fn.Params()
	if index < 0 || index >= len(params) {
		return 0, indexError(fn.Name(), index, len(params))
	}
	return params[index], nil
}

// bounds clips [start, start+count) to a buffer of length n.
// An empty result has lo == hi. Arithmetic never overflows, even for starts
// and counts near the int limits.
func bounds(n, start, count int) (lo, hi int) {
	if count <= 0 || start >= n {
		return 0, 0
	}
	if start < 0 {
		// start and count have opposite signs, so the sum fits.
		return 0, min(max(start+count, 0), n)
	}
	if count >= n-start {
		return start, n
	}
	return start, start + count
}

// apply runs f over the clipped range.
func apply(values []float64, start, count int, f func(float64) float64) {
	lo, hi := bounds(len(values), start, count)
	for i := lo; i < hi; i++ {
		values[i] = f(values[i])
	}
}

func indexError(name string, index, n int) error {
	return fmt.Errorf("%s: index %d (have %d parameters): %w", name, index, n, ErrInvalidParameterIndex)
}

// noParams is embedded by functions without tunable parameters.
type noParams struct{}

func (noParams) ParamNames() []string { return nil }

func (noParams) Params() []float64 { return nil }

func (noParams) HasDerivative() bool { return true }
