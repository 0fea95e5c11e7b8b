package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sandbox"
)

const (
	DefaultWidth         = 1200.0
	DefaultHeight        = 800.0
	DefaultFrames        = 3600
	DefaultFPS           = 60
	DefaultSeed          = 1
	DefaultClearRadius   = 100.0
	DefaultDespawnMargin = 100.0
	DefaultDoubleClick   = 300 * time.Millisecond
)

type Config struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Seed         int64   `yaml:"seed"`
	Frames       int     `yaml:"frames"`
	FPS          int     `yaml:"fps"`
	TimeScale    float64 `yaml:"time_scale"`
	GravityScale float64 `yaml:"gravity_scale"`

	Input   InputConfig         `yaml:"input"`
	Spawn   sandbox.SpawnConfig `yaml:"spawn"`
	Physics physics.Tuning      `yaml:"physics"`
}

type InputConfig struct {
	DoubleClick   time.Duration `yaml:"double_click"`
	ClearRadius   float64       `yaml:"clear_radius"`
	DespawnMargin float64       `yaml:"despawn_margin"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Seed:         DefaultSeed,
		Frames:       DefaultFrames,
		FPS:          DefaultFPS,
		TimeScale:    1.0,
		GravityScale: 1.0,
		Input: InputConfig{
			DoubleClick:   DefaultDoubleClick,
			ClearRadius:   DefaultClearRadius,
			DespawnMargin: DefaultDespawnMargin,
		},
		Spawn:   sandbox.DefaultSpawnConfig(),
		Physics: physics.DefaultTuning(),
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate clamps out-of-range values and reports settings that cannot be
// repaired.
func (c *Config) Validate() error {
	fc := c.FrameConfig()
	c.Width, c.Height = fc.Bounds.Width, fc.Bounds.Height
	c.TimeScale, c.GravityScale = fc.TimeScale, fc.GravityScale
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.Input.DoubleClick <= 0 {
		c.Input.DoubleClick = DefaultDoubleClick
	}

	if c.Frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", c.Frames)
	}
	if c.Spawn.Cap < 1 {
		return fmt.Errorf("spawn cap must be positive, got %d", c.Spawn.Cap)
	}
	if c.Spawn.Rate < 0 || c.Spawn.Rate > 1 || c.Spawn.MinRate < 0 || c.Spawn.MinRate > 1 {
		return fmt.Errorf("spawn rates must lie in [0,1], got %g/%g", c.Spawn.Rate, c.Spawn.MinRate)
	}
	for i, t := range c.Spawn.Tiers {
		if t.Min < 1 || t.Max < t.Min || t.Weight < 0 {
			return fmt.Errorf("spawn tier %d invalid: %+v", i, t)
		}
	}
	if c.Physics.MinRadius < 1 || c.Physics.MaxRadius < c.Physics.MinRadius {
		return fmt.Errorf("radius range [%d,%d] invalid", c.Physics.MinRadius, c.Physics.MaxRadius)
	}
	if c.Physics.Fragments < 0 {
		return fmt.Errorf("fragments must be non-negative, got %d", c.Physics.Fragments)
	}
	return nil
}

func (c *Config) FrameConfig() dynamo.FrameConfig {
	return dynamo.FrameConfig{
		TimeScale:    c.TimeScale,
		GravityScale: c.GravityScale,
		Bounds:       dynamo.Bounds{Width: c.Width, Height: c.Height},
	}.Normalized()
}

// Options builds the sandbox options for this config.
func (c *Config) Options() sandbox.Options {
	return sandbox.Options{
		Seed:          c.Seed,
		Tuning:        c.Physics,
		Spawn:         c.Spawn,
		DoubleClick:   c.Input.DoubleClick,
		ClearRadius:   c.Input.ClearRadius,
		DespawnMargin: c.Input.DespawnMargin,
	}
}
