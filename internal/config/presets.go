package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/sim"
)

var Presets = map[string]func() *Config{
	"comet": DefaultConfig,
	"black-holes": func() *Config {
		c := DefaultConfig()
		c.Sources.Count = 5
		c.Sources.Strength = 1.0
		c.Sources.Speed = 0.1
		return c
	},
	"trail": func() *Config {
		c := DefaultConfig()
		c.Scene.Mode = "emitted"
		c.Particles.Count = 20000
		c.Particles.TTL = 120
		c.Particles.Color = "#3366ff"
		c.Particles.Speed = 0.02
		return c
	},
	"dense": func() *Config {
		c := DefaultConfig()
		c.Particles.Count = 300000
		c.Particles.Size = 0.01
		return c
	},
	"calm": func() *Config {
		c := DefaultConfig()
		c.Particles.Count = 20000
		c.Particles.Drag = 0.025
		c.Particles.VelocityColor = false
		c.Particles.Color = "#ffcc66"
		c.Sources.Strength = 0.5
		c.Sources.Speed = 0.05
		return c
	},
}

// GetPreset returns a fresh copy of the named scene.
func GetPreset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, sim.ErrUnknownPreset)
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
