package sandbox

import "math/rand"

// Tier is one band of the spawn radius distribution.
type Tier struct {
	Weight float64 `yaml:"weight"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

type SpawnConfig struct {
	Rate    float64 `yaml:"rate"`
	MinRate float64 `yaml:"min_rate"`
	Decay   float64 `yaml:"decay"`
	Cap     int     `yaml:"cap"`
	// Height is the y coordinate new bodies appear at, above the play area.
	Height float64 `yaml:"height"`
	Tiers  []Tier  `yaml:"tiers"`
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Rate:    0.05,
		MinRate: 0.02,
		Decay:   0.0001,
		Cap:     200,
		Height:  -40,
		Tiers: []Tier{
			{Weight: 0.7, Min: 10, Max: 20},
			{Weight: 0.2, Min: 21, Max: 30},
			{Weight: 0.1, Min: 31, Max: 40},
		},
	}
}

// SpawnPolicy decides when a body spawns and how big it is. The rate
// decays linearly on every successful spawn until it reaches the floor.
type SpawnPolicy struct {
	cfg  SpawnConfig
	rate float64
}

func NewSpawnPolicy(cfg SpawnConfig) *SpawnPolicy {
	return &SpawnPolicy{cfg: cfg, rate: cfg.Rate}
}

func (p *SpawnPolicy) Rate() float64       { return p.rate }
func (p *SpawnPolicy) Config() SpawnConfig { return p.cfg }
func (p *SpawnPolicy) Reset()              { p.rate = p.cfg.Rate }

// Roll reports whether a body should spawn this frame.
func (p *SpawnPolicy) Roll(rng *rand.Rand) bool {
	return rng.Float64() < p.rate
}

// Spawned records a successful spawn and decays the rate.
func (p *SpawnPolicy) Spawned() {
	next := p.rate - p.cfg.Decay
	// repeated subtraction drifts a few ulps around the floor
	if next <= p.cfg.MinRate+1e-12 {
		next = p.cfg.MinRate
	}
	if p.rate < p.cfg.MinRate {
		next = p.rate
	}
	p.rate = next
}

// Radius draws a radius from the tiered distribution.
func (p *SpawnPolicy) Radius(rng *rand.Rand) int {
	if len(p.cfg.Tiers) == 0 {
		return 0
	}
	total := 0.0
	for _, t := range p.cfg.Tiers {
		total += t.Weight
	}
	u := rng.Float64() * total
	tier := p.cfg.Tiers[len(p.cfg.Tiers)-1]
	acc := 0.0
	for _, t := range p.cfg.Tiers {
		acc += t.Weight
		if u < acc {
			tier = t
			break
		}
	}
	if tier.Max <= tier.Min {
		return tier.Min
	}
	return tier.Min + rng.Intn(tier.Max-tier.Min+1)
}
