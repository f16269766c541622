package activation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numericDerivative checks Derivative against a central difference.
func numericDerivative(t *testing.T, fn Function, xs []float64) {
	t.Helper()
	const h = 1e-6
	for _, x := range xs {
		numeric := (applyOne(fn, x+h) - applyOne(fn, x-h)) / (2 * h)
		got := fn.Derivative(x, applyOne(fn, x))
		assert.InDelta(t, numeric, got, 1e-5, "%s'(%v)", fn.Name(), x)
	}
}

func TestLibraryActivations_Values(t *testing.T) {
	tests := []struct {
		fn   Function
		want func(float64) float64
	}{
		{NewSigmoid(), func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }},
		{NewBipolarSteepenedSigmoid(), func(x float64) float64 { return 2/(1+math.Exp(-4.9*x)) - 1 }},
		{NewTanh(), math.Tanh},
		{NewSin(), math.Sin},
		{NewElliottSymmetric(), func(x float64) float64 { return x / (1 + math.Abs(x)) }},
		{NewLog(), func(x float64) float64 {
			if x >= 0 {
				return math.Log(1 + x)
			}
			return -math.Log(1 - x)
		}},
	}

	xs := []float64{-3, -0.99, -0.01, 0, 0.01, 0.5, 0.99, 4}
	for _, tt := range tests {
		t.Run(tt.fn.Name(), func(t *testing.T) {
			values := append([]float64(nil), xs...)
			tt.fn.Apply(values, 0, len(values))
			for i, x := range xs {
				assert.InDelta(t, tt.want(x), values[i], 1e-12, "x=%v", x)
			}
			numericDerivative(t, tt.fn, []float64{-2, -0.3, 0.2, 1.7})
			assert.True(t, tt.fn.HasDerivative())
		})
	}
}

func TestLibraryActivations_ClipRange(t *testing.T) {
	for _, name := range Names() {
		fn, err := New(name)
		require.NoError(t, err)

		values := []float64{0.25, 0.25, 0.25}
		fn.Apply(values, 2, 10)

		assert.Equal(t, 0.25, values[0], name)
		assert.Equal(t, 0.25, values[1], name)
		assert.Equal(t, applyOne(fn, 0.25), values[2], name)
	}
}

func TestElliottSymmetric_Slope(t *testing.T) {
	fn := NewElliottSymmetric()
	require.NoError(t, fn.SetParam(0, 2))

	assert.InDelta(t, 1.0/(1+1), applyOne(fn, 0.5), 1e-12)
	numericDerivative(t, fn, []float64{-1, 0.4, 3})

	clone := fn.Clone()
	require.NoError(t, fn.SetParam(0, 5))
	assert.Equal(t, []float64{2}, clone.Params())
	assert.ErrorIs(t, fn.SetParam(1, 1), ErrInvalidParameterIndex)
}

func TestParameterlessActivations_RejectParams(t *testing.T) {
	for _, fn := range []Function{NewSigmoid(), NewBipolarSteepenedSigmoid(), NewTanh(), NewLog(), NewSin()} {
		assert.Empty(t, fn.ParamNames())
		assert.Empty(t, fn.Params())
		assert.ErrorIs(t, fn.SetParam(0, 1), ErrInvalidParameterIndex, fn.Name())
	}
}

func TestFlatSpot(t *testing.T) {
	assert.Equal(t, 0.1, FlatSpot(NewSigmoid()))
	assert.Equal(t, 0.1, FlatSpot(NewTanh()))
	assert.Zero(t, FlatSpot(NewFadingSine(1)))
	assert.Zero(t, FlatSpot(NewElliottSymmetric()))
}
