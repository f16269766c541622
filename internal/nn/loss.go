package nn

import (
	"gonum.org/v1/gonum/floats"
)

// ErrorCalculator accumulates the mean squared error over a dataset.
//
//	MSE = Σ (actual - ideal)² / number of compared values
//
// The zero value is ready to use.
type ErrorCalculator struct {
	sum   float64
	count int
}

// Update adds one actual/ideal vector pair. Both must have the same length.
func (e *ErrorCalculator) Update(actual, ideal []float64) {
	d := floats.Distance(actual, ideal, 2)
	e.sum += d * d
	e.count += len(actual)
}

// Merge adds the accumulated values of other.
func (e *ErrorCalculator) Merge(other *ErrorCalculator) {
	e.sum += other.sum
	e.count += other.count
}

// SSE returns the sum of squared errors.
func (e *ErrorCalculator) SSE() float64 {
	return e.sum
}

// MSE returns the mean squared error, or 0 before any update.
func (e *ErrorCalculator) MSE() float64 {
	if e.count == 0 {
		return 0
	}
	return e.sum / float64(e.count)
}

// Reset clears the accumulator.
func (e *ErrorCalculator) Reset() {
	e.sum = 0
	e.count = 0
}
