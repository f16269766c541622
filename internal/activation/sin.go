package activation

import "math"

// Sin is the undamped sine, f(x) = sin(x).
type Sin struct {
	noParams
}

// NewSin creates a sine activation.
func NewSin() *Sin {
	return &Sin{}
}

// Name returns "sin".
func (s *Sin) Name() string { return "sin" }

// Apply computes sin over values[start:start+count] in place.
func (s *Sin) Apply(values []float64, start, count int) {
	apply(values, start, count, math.Sin)
}

// Derivative returns cos(before).
func (s *Sin) Derivative(before, _ float64) float64 {
	return math.Cos(before)
}

// Clone returns a new sine.
func (s *Sin) Clone() Function { return NewSin() }

// SetParam always fails.
func (s *Sin) SetParam(index int, _ float64) error {
	return indexError(s.Name(), index, 0)
}
