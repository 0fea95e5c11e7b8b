package experiment

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
)

// Ensemble runs the same experiment with consecutive seeds in parallel.
type Ensemble struct {
	cfg       Config
	input     Input
	numRuns   int
	seedStart int64
	limit     int
	// Metrics builds a fresh metric set for each run.
	Metrics func() []dynamo.Metric
}

func NewEnsemble(cfg Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		cfg:       cfg,
		numRuns:   numRuns,
		seedStart: seedStart,
		limit:     runtime.NumCPU(),
		Metrics:   metrics.Default,
	}
}

func (e *Ensemble) SetInput(in Input) { e.input = in }

// SetLimit caps the number of runs in flight.
func (e *Ensemble) SetLimit(n int) {
	if n > 0 {
		e.limit = n
	}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			cfg := e.cfg
			cfg.Options.Seed = e.seedStart + int64(i)

			exp := New(cfg)
			exp.SetInput(e.input)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					exp.AddMetric(m)
				}
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates an ensemble.
type Summary struct {
	Runs                int
	Frames              int
	FramesPerSecond     float64
	MeanFinalPopulation float64
	MeanMetrics         map[string]float64
	Faults              int
}

func Summarize(results []*Result) Summary {
	s := Summary{Runs: len(results), MeanMetrics: make(map[string]float64)}
	if len(results) == 0 {
		return s
	}
	var elapsed time.Duration
	for _, r := range results {
		s.Frames += r.Frames
		elapsed += r.Elapsed
		s.Faults += len(r.Faults)
		if r.Final != nil {
			s.MeanFinalPopulation += float64(len(r.Final.Bodies))
		}
		for k, v := range r.Metrics {
			s.MeanMetrics[k] += v
		}
	}
	n := float64(len(results))
	s.MeanFinalPopulation /= n
	for k := range s.MeanMetrics {
		s.MeanMetrics[k] /= n
	}
	if elapsed > 0 {
		s.FramesPerSecond = float64(s.Frames) / elapsed.Seconds()
	}
	return s
}
