package config

import "math"

// Param is one tunable exposed to the interactive views, with the range of
// its slider.
type Param struct {
	Name  string
	Label string
	Min   float64
	Max   float64
	Step  float64

	get func(*Config) float64
	set func(*Config, float64)
}

// Get reads the parameter from c.
func (p Param) Get(c *Config) float64 { return p.get(c) }

// Set writes v into c after clamping it to [Min, Max].
func (p Param) Set(c *Config, v float64) {
	p.set(c, math.Max(p.Min, math.Min(p.Max, v)))
}

// Nudge moves the parameter by dir steps.
func (p Param) Nudge(c *Config, dir int) {
	p.Set(c, p.Get(c)+float64(dir)*p.Step)
}

var params = []Param{
	{
		Name: "count", Label: "Count", Min: 100, Max: 300000, Step: 5000,
		get: func(c *Config) float64 { return float64(c.Particles.Count) },
		set: func(c *Config, v float64) { c.Particles.Count = int(math.Round(v)) },
	},
	{
		Name: "size", Label: "Size", Min: 0.01, Max: 0.05, Step: 0.005,
		get: func(c *Config) float64 { return c.Particles.Size },
		set: func(c *Config, v float64) { c.Particles.Size = v },
	},
	{
		Name: "speed", Label: "Speed Multiplier", Min: 0.001, Max: 0.1, Step: 0.001,
		get: func(c *Config) float64 { return c.Particles.Speed },
		set: func(c *Config, v float64) { c.Particles.Speed = v },
	},
	{
		Name: "drag", Label: "Drag", Min: 0, Max: 0.025, Step: 0.0005,
		get: func(c *Config) float64 { return c.Particles.Drag },
		set: func(c *Config, v float64) { c.Particles.Drag = v },
	},
	{
		Name: "strength", Label: "Strength", Min: 0.1, Max: 2.5, Step: 0.1,
		get: func(c *Config) float64 { return c.Sources.Strength },
		set: func(c *Config, v float64) { c.Sources.Strength = v },
	},
	{
		Name: "pull_radius", Label: "Pull Radius", Min: 1, Max: 50, Step: 1,
		get: func(c *Config) float64 { return c.Sources.PullRadius },
		set: func(c *Config, v float64) { c.Sources.PullRadius = v },
	},
	{
		Name: "source_speed", Label: "Source Speed", Min: 0.01, Max: 0.5, Step: 0.01,
		get: func(c *Config) float64 { return c.Sources.Speed },
		set: func(c *Config, v float64) { c.Sources.Speed = v },
	},
	{
		Name: "sources", Label: "Sources", Min: 1, Max: 10, Step: 1,
		get: func(c *Config) float64 { return float64(c.Sources.Count) },
		set: func(c *Config, v float64) { c.Sources.Count = int(math.Round(v)) },
	},
	{
		Name: "ttl", Label: "TTL", Min: 1, Max: 600, Step: 10,
		get: func(c *Config) float64 { return float64(c.Particles.TTL) },
		set: func(c *Config, v float64) { c.Particles.TTL = int(math.Round(v)) },
	},
}

// Params returns the tunables in display order.
func Params() []Param {
	out := make([]Param, len(params))
	copy(out, params)
	return out
}

// GetParam looks a tunable up by name.
func GetParam(name string) (Param, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
