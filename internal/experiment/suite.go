package experiment

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Suite runs a list of experiments.
type Suite struct {
	// Workers limits how many experiments train at once. Values below 1 run
	// them one after another, which keeps timings comparable.
	Workers int
	// Calibrate runs a warm-up iteration before the first experiment.
	Calibrate bool
	// CalibrationSeed seeds the warm-up network.
	CalibrationSeed int64
	Observer        Observer
	Metrics         *Metrics
}

// Run validates every config, then trains them. Results are in input order.
// The first failing experiment cancels the rest; canceled experiments still
// report their partial results.
func (s *Suite) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	var verr error
	for i := range cfgs {
		verr = multierr.Append(verr, cfgs[i].Validate())
	}
	if verr != nil {
		return nil, verr
	}

	if s.Calibrate {
		if err := Calibrate(s.CalibrationSeed); err != nil {
			return nil, err
		}
	}

	obs := Observers(s.Observer)
	if s.Metrics != nil {
		obs = Observers(s.Observer, s.Metrics)
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]*Result, len(cfgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			res, err := Run(gctx, cfg, obs)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	return results, err
}
