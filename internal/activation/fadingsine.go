package activation

import "math"

// FadingSine is a damped sinusoid.
//
// With t = x / period:
//
//	f(t) = sin(t)        for |t| <= π
//	f(t) = sin(t) / |t|  for |t| >  π
//
// Near the origin it behaves like a plain sine; outside [-π, π] the
// amplitude decays like 1/|t|. The boundary is strict, so t = ±π stays on
// the undamped branch. The decaying branch never divides by zero because
// |t| > π there.
//
// Example:
//
//	fn := activation.NewFadingSine(1)
//	values := []float64{0, 3.5}
//	fn.Apply(values, 0, len(values))  // [0, sin(3.5)/3.5]
type FadingSine struct {
	period float64
}

// NewFadingSine creates a fading sine with the given period.
func NewFadingSine(period float64) *FadingSine {
	return &FadingSine{period: period}
}

// Name returns "fading-sine".
func (f *FadingSine) Name() string {
	return "fading-sine"
}

// Period returns the argument scale.
func (f *FadingSine) Period() float64 {
	return f.period
}

// Apply computes the fading sine over values[start:start+count] in place.
func (f *FadingSine) Apply(values []float64, start, count int) {
	apply(values, start, count, f.value)
}

func (f *FadingSine) value(x float64) float64 {
	t := x / f.period
	if t < -math.Pi || t > math.Pi {
		return math.Sin(t) / math.Abs(t)
	}
	return math.Sin(t)
}

// Derivative returns the slope at before.
//
//	f'(t) = cos(t)                          for |t| <= π
//	f'(t) = cos(t)/|t| - sin(t)/(t·|t|)     for |t| >  π
//
// The slope is taken with respect to t, matching the plain sine it extends.
// after is not used.
func (f *FadingSine) Derivative(before, _ float64) float64 {
	t := before / f.period
	if t < -math.Pi || t > math.Pi {
		abs := math.Abs(t)
		return math.Cos(t)/abs - math.Sin(t)/(t*abs)
	}
	return math.Cos(t)
}

// Clone returns an independent fading sine with the same period.
func (f *FadingSine) Clone() Function {
	return &FadingSine{period: f.period}
}

// ParamNames returns ["period"].
func (f *FadingSine) ParamNames() []string {
	return []string{"period"}
}

// Params returns [period].
func (f *FadingSine) Params() []float64 {
	return []float64{f.period}
}

// SetParam sets the period. Only index 0 is valid.
func (f *FadingSine) SetParam(index int, value float64) error {
	if index != 0 {
		return indexError(f.Name(), index, 1)
	}
	f.period = value
	return nil
}

// HasDerivative returns true.
func (f *FadingSine) HasDerivative() bool {
	return true
}
