package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sandbox"
)

// Input scripts the per-frame input of a headless run. Implementations must
// be safe to share between concurrent runs.
type Input interface {
	Frame(index int, base sandbox.FrameInput) sandbox.FrameInput
}

type Config struct {
	Name    string
	Frames  int
	Options sandbox.Options
	Frame   dynamo.FrameConfig
	// SampleEvery keeps one telemetry sample per this many frames.
	SampleEvery int
}

// Sample is one row of run telemetry.
type Sample struct {
	Frame      int     `json:"frame"`
	Population int     `json:"population"`
	Kinetic    float64 `json:"kinetic"`
	Momentum   float64 `json:"momentum"`
	SpawnRate  float64 `json:"spawn_rate"`
	Spawned    int     `json:"spawned"`
	Despawned  int     `json:"despawned"`
	Merged     int     `json:"merged"`
	Exploded   int     `json:"exploded"`
	Cleared    int     `json:"cleared"`
	Faults     int     `json:"faults"`
}

type Result struct {
	Name    string
	Seed    int64
	Frames  int
	Samples []Sample
	Metrics map[string]float64
	Final   *dynamo.Frame
	Faults  []error
	Elapsed time.Duration
}

// Series extracts one telemetry column by name.
func (r *Result) Series(name string) ([]float64, error) {
	return Column(r.Samples, name)
}

type Experiment struct {
	cfg       Config
	input     Input
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) SetInput(in Input)             { e.input = in }
func (e *Experiment) AddMetric(m dynamo.Metric)     { e.metrics = append(e.metrics, m) }
func (e *Experiment) AddObserver(o dynamo.Observer) { e.observers = append(e.observers, o) }
func (e *Experiment) Config() Config                { return e.cfg }

// UseDefaultMetrics attaches the standard telemetry metrics.
func (e *Experiment) UseDefaultMetrics() {
	for _, m := range metrics.Default() {
		e.AddMetric(m)
	}
}

func (e *Experiment) validate() error {
	if e.cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", e.cfg.Frames)
	}
	if e.cfg.Options.Spawn.Cap <= 0 {
		return fmt.Errorf("spawn cap must be positive, got %d", e.cfg.Options.Spawn.Cap)
	}
	return nil
}

// Run steps a fresh world for the configured number of frames. A cancelled
// context stops the run and returns the partial result with ctx.Err().
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	every := e.cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Name:    e.cfg.Name,
		Seed:    e.cfg.Options.Seed,
		Samples: make([]Sample, 0, e.cfg.Frames/every+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	w := sandbox.New(e.cfg.Options)
	base := sandbox.InputFor(e.cfg.Frame)
	start := time.Now()

	for i := 1; i <= e.cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			result.Final = w.Snapshot()
			return result, ctx.Err()
		default:
		}

		in := base
		if e.input != nil {
			in = e.input.Frame(i, base)
		}
		rep := w.Step(in)
		result.Faults = append(result.Faults, rep.Faults...)

		f := w.Snapshot()
		for _, m := range e.metrics {
			m.Observe(f)
		}
		for _, obs := range e.observers {
			obs.OnFrame(f)
		}
		if i%every == 0 || i == e.cfg.Frames {
			result.Samples = append(result.Samples, sampleOf(f, w.SpawnRate()))
		}
		result.Frames++
		result.Final = f
	}

	result.Elapsed = time.Since(start)
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func sampleOf(f *dynamo.Frame, rate float64) Sample {
	return Sample{
		Frame:      f.Index,
		Population: len(f.Bodies),
		Kinetic:    metrics.TotalKinetic(f),
		Momentum:   metrics.Momentum(f),
		SpawnRate:  rate,
		Spawned:    f.Events.Spawned,
		Despawned:  f.Events.Despawned,
		Merged:     f.Events.Merged,
		Exploded:   f.Events.Exploded,
		Cleared:    f.Events.Cleared,
		Faults:     f.Events.Faults,
	}
}
