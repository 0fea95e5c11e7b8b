package metrics

import "github.com/san-kum/ballpit/internal/dynamo"

// Population is the mean number of bodies per frame.
type Population struct {
	name    string
	sum     int
	samples int
}

func NewPopulation() *Population {
	return &Population{
		name: "population",
	}
}

func (p *Population) Name() string {
	return p.name
}

func (p *Population) Observe(f *dynamo.Frame) {
	p.sum += len(f.Bodies)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.sum) / float64(p.samples)
}

func (p *Population) Reset() {
	p.sum = 0
	p.samples = 0
}

// Counter totals one of the per-frame event counts.
type Counter struct {
	name  string
	pick  func(dynamo.FrameEvents) int
	total int
}

func NewCounter(name string, pick func(dynamo.FrameEvents) int) *Counter {
	return &Counter{name: name, pick: pick}
}

func (c *Counter) Name() string            { return c.name }
func (c *Counter) Observe(f *dynamo.Frame) { c.total += c.pick(f.Events) }
func (c *Counter) Value() float64          { return float64(c.total) }
func (c *Counter) Reset()                  { c.total = 0 }

// Default returns the metrics recorded by headless runs.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewPopulation(),
		NewKineticEnergy(),
		NewPeakEnergy(),
		NewContainment(1.0),
		NewCounter("spawns", func(e dynamo.FrameEvents) int { return e.Spawned }),
		NewCounter("despawns", func(e dynamo.FrameEvents) int { return e.Despawned }),
		NewCounter("merges", func(e dynamo.FrameEvents) int { return e.Merged }),
		NewCounter("explosions", func(e dynamo.FrameEvents) int { return e.Exploded }),
		NewCounter("cleared", func(e dynamo.FrameEvents) int { return e.Cleared }),
		NewCounter("faults", func(e dynamo.FrameEvents) int { return e.Faults }),
	}
}
