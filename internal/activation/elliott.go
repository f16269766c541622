package activation

import "math"

// ElliottSymmetric is a cheap tanh-like squashing function:
//
//	f(x) = (x·s) / (1 + |x·s|)
//
// where s is the slope. Output range is (-1, 1).
type ElliottSymmetric struct {
	slope float64
}

// NewElliottSymmetric creates an Elliott symmetric activation with slope 1.
func NewElliottSymmetric() *ElliottSymmetric {
	return &ElliottSymmetric{slope: 1}
}

// Name returns "elliott-symmetric".
func (e *ElliottSymmetric) Name() string { return "elliott-symmetric" }

// Apply computes the function over values[start:start+count] in place.
func (e *ElliottSymmetric) Apply(values []float64, start, count int) {
	apply(values, start, count, func(x float64) float64 {
		xs := x * e.slope
		return xs / (1.0 + math.Abs(xs))
	})
}

// Derivative returns s / (1 + |before·s|)².
func (e *ElliottSymmetric) Derivative(before, _ float64) float64 {
	d := 1.0 + math.Abs(before*e.slope)
	return e.slope / (d * d)
}

// Clone returns an independent copy with the same slope.
func (e *ElliottSymmetric) Clone() Function {
	return &ElliottSymmetric{slope: e.slope}
}

// ParamNames returns ["slope"].
func (e *ElliottSymmetric) ParamNames() []string { return []string{"slope"} }

// Params returns [slope].
func (e *ElliottSymmetric) Params() []float64 { return []float64{e.slope} }

// SetParam sets the slope (index 0).
func (e *ElliottSymmetric) SetParam(index int, value float64) error {
	if index != 0 {
		return indexError(e.Name(), index, 1)
	}
	e.slope = value
	return nil
}

// HasDerivative returns true.
func (e *ElliottSymmetric) HasDerivative() bool { return true }
