package activation

import "math"

// Tanh is the hyperbolic tangent. Output range is (-1, 1).
type Tanh struct {
	noParams
}

// NewTanh creates a tanh activation.
func NewTanh() *Tanh {
	return &Tanh{}
}

// Name returns "tanh".
func (t *Tanh) Name() string { return "tanh" }

// Apply computes tanh over values[start:start+count] in place.
func (t *Tanh) Apply(values []float64, start, count int) {
	apply(values, start, count, math.Tanh)
}

// Derivative returns 1 - after².
func (t *Tanh) Derivative(_, after float64) float64 {
	return 1.0 - after*after
}

// FlatSpot returns 0.1.
func (t *Tanh) FlatSpot() float64 { return 0.1 }

// Clone returns a new tanh.
func (t *Tanh) Clone() Function { return NewTanh() }

// SetParam always fails.
func (t *Tanh) SetParam(index int, _ float64) error {
	return indexError(t.Name(), index, 0)
}
