package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/sim"
	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount         = 100000
	DefaultParticleSpeed = 0.01
	DefaultDrag          = 0.0165
	DefaultColor         = "#ffffff"
	DefaultSize          = 0.02
	DefaultTTL           = 60
	DefaultSources       = 1
	DefaultSourceSpeed   = 0.2
	DefaultStrength      = 1.5
	DefaultPullRadius    = 25.0
	DefaultBoxSize       = 20.0
)

// Config is the file and flag representation of a scene. Every section maps
// to both a YAML mapping and a gcfg section.
type Config struct {
	Scene     SceneConfig    `yaml:"scene" gcfg:"scene"`
	Particles ParticleConfig `yaml:"particles" gcfg:"particles"`
	Sources   SourceConfig   `yaml:"sources" gcfg:"sources"`
	Box       BoxConfig      `yaml:"box" gcfg:"box"`
}

type SceneConfig struct {
	Mode   string `yaml:"mode" gcfg:"mode"`
	Seed   int64  `yaml:"seed" gcfg:"seed"`
	Frames int    `yaml:"frames" gcfg:"frames"`
}

type ParticleConfig struct {
	Count         int     `yaml:"count" gcfg:"count"`
	Speed         float64 `yaml:"speed" gcfg:"speed"`
	Drag          float64 `yaml:"drag" gcfg:"drag"`
	Color         string  `yaml:"color" gcfg:"color"`
	VelocityColor bool    `yaml:"velocity_color" gcfg:"velocity-color"`
	Size          float64 `yaml:"size" gcfg:"size"`
	TTL           int     `yaml:"ttl" gcfg:"ttl"`
}

type SourceConfig struct {
	Count      int     `yaml:"count" gcfg:"count"`
	Speed      float64 `yaml:"speed" gcfg:"speed"`
	Strength   float64 `yaml:"strength" gcfg:"strength"`
	PullRadius float64 `yaml:"pull_radius" gcfg:"pull-radius"`
}

// BoxConfig describes the reflective box. Width, height and depth default to
// Size when zero.
type BoxConfig struct {
	Size   float64 `yaml:"size" gcfg:"size"`
	Width  float64 `yaml:"width,omitempty" gcfg:"width"`
	Height float64 `yaml:"height,omitempty" gcfg:"height"`
	Depth  float64 `yaml:"depth,omitempty" gcfg:"depth"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene: SceneConfig{
			Mode:   particles.Static.String(),
			Frames: 600,
		},
		Particles: ParticleConfig{
			Count:         DefaultCount,
			Speed:         DefaultParticleSpeed,
			Drag:          DefaultDrag,
			Color:         DefaultColor,
			VelocityColor: true,
			Size:          DefaultSize,
			TTL:           DefaultTTL,
		},
		Sources: SourceConfig{
			Count:      DefaultSources,
			Speed:      DefaultSourceSpeed,
			Strength:   DefaultStrength,
			PullRadius: DefaultPullRadius,
		},
		Box: BoxConfig{
			Size: DefaultBoxSize,
		},
	}
}

// Load reads a scene file on top of the defaults. Files ending in .gcfg,
// .ini or .conf are parsed as gcfg; anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if isINI(path) {
		if err := gcfg.ReadFileInto(cfg, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isINI(path) {
		return os.WriteFile(path, []byte(cfg.INI()), 0644)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isINI(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gcfg", ".ini", ".conf":
		return true
	}
	return false
}

// INI renders the config in gcfg syntax.
func (c *Config) INI() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[scene]\nmode = %s\nseed = %d\nframes = %d\n\n", c.Scene.Mode, c.Scene.Seed, c.Scene.Frames)
	fmt.Fprintf(&b, "[particles]\ncount = %d\nspeed = %g\ndrag = %g\ncolor = \"%s\"\nvelocity-color = %t\nsize = %g\nttl = %d\n\n",
		c.Particles.Count, c.Particles.Speed, c.Particles.Drag, c.Particles.Color,
		c.Particles.VelocityColor, c.Particles.Size, c.Particles.TTL)
	fmt.Fprintf(&b, "[sources]\ncount = %d\nspeed = %g\nstrength = %g\npull-radius = %g\n\n",
		c.Sources.Count, c.Sources.Speed, c.Sources.Strength, c.Sources.PullRadius)
	fmt.Fprintf(&b, "[box]\nsize = %g\n", c.Box.Size)
	for _, kv := range []struct {
		k string
		v float64
	}{{"width", c.Box.Width}, {"height", c.Box.Height}, {"depth", c.Box.Depth}} {
		if kv.v != 0 {
			fmt.Fprintf(&b, "%s = %g\n", kv.k, kv.v)
		}
	}
	return b.String()
}

// Validate reports values the simulation cannot run with.
func (c *Config) Validate() error {
	if _, err := particles.ParseMode(c.Scene.Mode); err != nil {
		return fmt.Errorf("scene.mode: %w", sim.ErrUnknownMode)
	}
	if _, err := colorful.Hex(c.Particles.Color); err != nil {
		return fmt.Errorf("particles.color %q: %w", c.Particles.Color, err)
	}
	return c.Sim().Validate()
}

// Clamp pulls every tunable into its interactive range.
func (c *Config) Clamp() {
	for _, p := range Params() {
		p.Set(c, p.Get(c))
	}
	if c.Box.Size <= 0 {
		c.Box.Size = DefaultBoxSize
	}
}

// Mode returns the parsed pool mode, falling back to static.
func (c *Config) Mode() particles.Mode {
	m, err := particles.ParseMode(c.Scene.Mode)
	if err != nil {
		return particles.Static
	}
	return m
}

// BaseColor returns the particle base color, white if the hex is invalid.
func (c *Config) BaseColor() colorful.Color {
	col, err := colorful.Hex(c.Particles.Color)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

// HalfExtents returns half the box dimensions per axis.
func (c *Config) HalfExtents() mgl64.Vec3 {
	dim := func(v float64) float64 {
		if v > 0 {
			return v / 2
		}
		return c.Box.Size / 2
	}
	return mgl64.Vec3{dim(c.Box.Width), dim(c.Box.Height), dim(c.Box.Depth)}
}

// Sim converts the file representation into the per-frame snapshot.
func (c *Config) Sim() sim.Config {
	col := c.BaseColor()
	return sim.Config{
		Mode:          c.Mode(),
		Count:         c.Particles.Count,
		Sources:       c.Sources.Count,
		TTL:           c.Particles.TTL,
		BoxScale:      c.Box.Size,
		HalfExtents:   c.HalfExtents(),
		Gravity:       c.Sources.Strength,
		PullRadius:    c.Sources.PullRadius,
		ParticleSpeed: c.Particles.Speed,
		SourceSpeed:   c.Sources.Speed,
		Drag:          c.Particles.Drag,
		Color:         mgl64.Vec3{col.R, col.G, col.B},
		VelocityColor: c.Particles.VelocityColor,
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
