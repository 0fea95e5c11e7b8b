package config

import (
	"sort"

	"github.com/san-kum/ballpit/internal/sandbox"
)

var Presets = map[string]func(*Config){
	"classic": func(*Config) {},
	"calm": func(c *Config) {
		c.TimeScale = 0.75
		c.GravityScale = 0.5
		c.Spawn.Rate = 0.02
		c.Spawn.MinRate = 0.01
	},
	"storm": func(c *Config) {
		c.GravityScale = 2.0
		c.Spawn.Rate = 0.2
		c.Spawn.MinRate = 0.1
		c.Physics.SpecialChance = 0.2
	},
	"zero_g": func(c *Config) {
		c.GravityScale = 0
		c.Spawn.Rate = 0.03
	},
	"crowd": func(c *Config) {
		c.Spawn.Rate = 0.5
		c.Spawn.MinRate = 0.3
		c.Spawn.Tiers = []sandbox.Tier{{Weight: 1, Min: 8, Max: 14}}
		c.Physics.SpecialChance = 0
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
