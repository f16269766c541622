package activation

import "math"

// Sigmoid is the logistic function σ(x) = 1 / (1 + exp(-x)).
//
// Output range is (0, 1), so it pairs with zero-one encoded targets.
type Sigmoid struct {
	noParams
}

// NewSigmoid creates a sigmoid activation.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// Name returns "sigmoid".
func (s *Sigmoid) Name() string { return "sigmoid" }

// Apply computes σ over values[start:start+count] in place.
func (s *Sigmoid) Apply(values []float64, start, count int) {
	apply(values, start, count, func(x float64) float64 {
		return 1.0 / (1.0 + math.Exp(-x))
	})
}

// Derivative returns σ'(x) = σ(x)·(1 - σ(x)), using after = σ(x).
func (s *Sigmoid) Derivative(_, after float64) float64 {
	return after * (1.0 - after)
}

// FlatSpot returns 0.1.
func (s *Sigmoid) FlatSpot() float64 { return 0.1 }

// Clone returns a new sigmoid.
func (s *Sigmoid) Clone() Function { return NewSigmoid() }

// SetParam always fails: sigmoid has no parameters.
func (s *Sigmoid) SetParam(index int, _ float64) error {
	return indexError(s.Name(), index, 0)
}

// BipolarSteepenedSigmoid is 2 / (1 + exp(-4.9x)) - 1.
//
// Output range is (-1, 1) with a steep transition around the origin.
type BipolarSteepenedSigmoid struct {
	noParams
}

// NewBipolarSteepenedSigmoid creates a bipolar steepened sigmoid.
func NewBipolarSteepenedSigmoid() *BipolarSteepenedSigmoid {
	return &BipolarSteepenedSigmoid{}
}

// Name returns "bipolar-steepened-sigmoid".
func (b *BipolarSteepenedSigmoid) Name() string { return "bipolar-steepened-sigmoid" }

// Apply computes the function over values[start:start+count] in place.
func (b *BipolarSteepenedSigmoid) Apply(values []float64, start, count int) {
	apply(values, start, count, func(x float64) float64 {
		return 2.0/(1.0+math.Exp(-4.9*x)) - 1.0
	})
}

// Derivative returns 2.45·(1 - after²).
func (b *BipolarSteepenedSigmoid) Derivative(_, after float64) float64 {
	return 2.45 * (1.0 - after*after)
}

// Clone returns a new bipolar steepened sigmoid.
func (b *BipolarSteepenedSigmoid) Clone() Function { return NewBipolarSteepenedSigmoid() }

// SetParam always fails.
func (b *BipolarSteepenedSigmoid) SetParam(index int, _ float64) error {
	return indexError(b.Name(), index, 0)
}
