package automation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/sandbox"
)

var sweepParams = map[string]func(*config.Config, float64){
	"time_scale":     func(c *config.Config, v float64) { c.TimeScale = v },
	"gravity_scale":  func(c *config.Config, v float64) { c.GravityScale = v },
	"spawn_rate":     func(c *config.Config, v float64) { c.Spawn.Rate = v },
	"restitution":    func(c *config.Config, v float64) { c.Physics.Restitution = v },
	"wall_bounce":    func(c *config.Config, v float64) { c.Physics.WallBounce = v },
	"damping":        func(c *config.Config, v float64) { c.Physics.Damping = v },
	"field_strength": func(c *config.Config, v float64) { c.Physics.FieldStrength = v },
}

// Derive copies base and sets each named parameter on the copy.
func Derive(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := *base
	cfg.Spawn.Tiers = append([]sandbox.Tier(nil), base.Spawn.Tiers...)
	for name, v := range params {
		set, ok := sweepParams[name]
		if !ok {
			return nil, fmt.Errorf("unknown sweep parameter: %s", name)
		}
		set(&cfg, v)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs one experiment per value of a single parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Base      *config.Config
	Input     experiment.Input
	Logger    *slog.Logger
}

type SweepResult struct {
	ParamValue      float64
	FinalPopulation int
	MeanKinetic     float64
	PeakKinetic     float64
	Merges          float64
	Explosions      float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if _, ok := sweepParams[sweep.ParamName]; !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s", sweep.ParamName)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	base := sweep.Base
	if base == nil {
		base = config.DefaultConfig()
	}
	logger := sweep.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg, err := Derive(base, map[string]float64{sweep.ParamName: paramVal})
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		exp := experiment.New(experiment.Config{
			Name:    fmt.Sprintf("%s=%g", sweep.ParamName, paramVal),
			Frames:  cfg.Frames,
			Options: cfg.Options(),
			Frame:   cfg.FrameConfig(),
		})
		exp.SetInput(sweep.Input)
		exp.UseDefaultMetrics()
		res, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue:      paramVal,
			FinalPopulation: len(res.Final.Bodies),
			MeanKinetic:     res.Metrics["kinetic_energy"],
			PeakKinetic:     res.Metrics["peak_energy"],
			Merges:          res.Metrics["merges"],
			Explosions:      res.Metrics["explosions"],
		})
		logger.Info("sweep step", slog.Int("step", i+1), slog.Int("of", sweep.NumSteps),
			slog.String("param", sweep.ParamName), slog.Float64("value", paramVal))
	}
	return results, nil
}
