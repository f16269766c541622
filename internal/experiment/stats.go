package experiment

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a batch of results.
type Stats struct {
	Runs       int
	Converged  int
	MeanEpochs float64
	StdEpochs  float64
	MeanError  float64
	MinError   float64
	MaxError   float64
}

// Summarize computes Stats over results. Nil entries are skipped.
func Summarize(results []*Result) Stats {
	var epochs, errs []float64
	var s Stats
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Runs++
		if r.Converged() {
			s.Converged++
		}
		epochs = append(epochs, float64(len(r.Epochs)))
		errs = append(errs, r.FinalError)
	}
	if s.Runs == 0 {
		return s
	}
	s.MeanEpochs = stat.Mean(epochs, nil)
	if s.Runs > 1 {
		s.StdEpochs = stat.StdDev(epochs, nil)
	}
	s.MeanError = stat.Mean(errs, nil)
	s.MinError, s.MaxError = errs[0], errs[0]
	for _, e := range errs[1:] {
		s.MinError = min(s.MinError, e)
		s.MaxError = max(s.MaxError, e)
	}
	return s
}
