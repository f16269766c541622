package activation

import "math"

// Log is a symmetric logarithm:
//
//	f(x) =  ln(1 + x)  for x >= 0
//	f(x) = -ln(1 - x)  for x <  0
//
// It is unbounded but grows slowly, which keeps saturation away.
type Log struct {
	noParams
}

// NewLog creates a logarithmic activation.
func NewLog() *Log {
	return &Log{}
}

// Name returns "log".
func (l *Log) Name() string { return "log" }

// Apply computes the symmetric logarithm over values[start:start+count].
func (l *Log) Apply(values []float64, start, count int) {
	apply(values, start, count, func(x float64) float64 {
		if x >= 0 {
			return math.Log1p(x)
		}
		return -math.Log1p(-x)
	})
}

// Derivative returns 1/(1+|before|).
func (l *Log) Derivative(before, _ float64) float64 {
	if before >= 0 {
		return 1.0 / (1.0 + before)
	}
	return 1.0 / (1.0 - before)
}

// Clone returns a new logarithmic activation.
func (l *Log) Clone() Function { return NewLog() }

// SetParam always fails.
func (l *Log) SetParam(index int, _ float64) error {
	return indexError(l.Name(), index, 0)
}
