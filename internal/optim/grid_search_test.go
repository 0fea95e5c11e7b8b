package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/metrics"
)

func builder(base *config.Config) func(map[string]float64) (*experiment.Experiment, error) {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, err := automation.Derive(base, params)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(experiment.Config{
			Name:    "grid",
			Frames:  cfg.Frames,
			Options: cfg.Options(),
			Frame:   cfg.FrameConfig(),
		})
		exp.AddMetric(metrics.NewPopulation())
		return exp, nil
	}
}

func TestGridSearchFindsHighestSpawnRate(t *testing.T) {
	base := config.DefaultConfig()
	base.Frames = 120

	g, err := NewGridSearch(
		[]string{"spawn_rate", "gravity_scale"},
		[][]float64{{0, 0.5}, {1, 2}},
	)
	if err != nil {
		t.Fatal(err)
	}
	g.Maximize = true
	if g.Size() != 4 {
		t.Fatalf("expected 4 grid points, got %d", g.Size())
	}

	best, trials, err := g.Search(context.Background(), builder(base), "population")
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(trials))
	}
	if best.Params["spawn_rate"] != 0.5 {
		t.Errorf("expected best spawn rate 0.5, got %v", best.Params)
	}
	if best.Score <= 0 {
		t.Errorf("expected a populated world, got score %f", best.Score)
	}
	for _, tr := range trials[:2] {
		if tr.Params["spawn_rate"] != 0 || tr.Score != 0 {
			t.Errorf("expected empty world without spawning, got %+v", tr)
		}
	}
}

func TestGridSearchMinimizes(t *testing.T) {
	base := config.DefaultConfig()
	base.Frames = 60
	g, err := NewGridSearch([]string{"spawn_rate"}, [][]float64{{0.5, 0}})
	if err != nil {
		t.Fatal(err)
	}
	best, _, err := g.Search(context.Background(), builder(base), "population")
	if err != nil {
		t.Fatal(err)
	}
	if best.Params["spawn_rate"] != 0 || best.Score != 0 {
		t.Errorf("expected empty run to win, got %+v", best)
	}
}

func TestGridSearchErrors(t *testing.T) {
	if _, err := NewGridSearch([]string{"a"}, nil); err == nil {
		t.Error("expected mismatch error")
	}
	if _, err := NewGridSearch([]string{"a"}, [][]float64{{}}); err == nil {
		t.Error("expected empty range error")
	}

	g, _ := NewGridSearch([]string{"nope"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), builder(config.DefaultConfig()), "population"); err == nil {
		t.Error("expected unknown parameter error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, _ = NewGridSearch([]string{"spawn_rate"}, [][]float64{{0.1}})
	if _, _, err := g.Search(ctx, builder(config.DefaultConfig()), "population"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
