package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layers names the places a scene is built from, applied in order: a preset,
// an optional scene file, then overrides.
type Layers struct {
	Preset string
	// PresetSet marks the preset as chosen explicitly. A scene file is then
	// merged onto it instead of replacing it.
	PresetSet bool
	File      string
	Overrides []func(*Config)
}

// Resolve builds the scene described by l and returns it with a display name.
// The result is clamped to the tunable ranges and validated.
func Resolve(l Layers) (*Config, string, error) {
	cfg, err := GetPreset(l.Preset)
	if err != nil {
		return nil, "", fmt.Errorf("%w (available: %s)", err, strings.Join(ListPresets(), ", "))
	}
	name := l.Preset

	if l.File != "" {
		loaded, err := Load(l.File)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		if l.PresetSet {
			Merge(cfg, loaded)
		} else {
			cfg = loaded
		}
		name = strings.TrimSuffix(filepath.Base(l.File), filepath.Ext(l.File))
	}

	for _, o := range l.Overrides {
		o(cfg)
	}

	cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

// Merge copies every section of file that differs from the defaults onto dst.
func Merge(dst, file *Config) {
	def := DefaultConfig()
	if file.Scene != def.Scene {
		dst.Scene = file.Scene
	}
	if file.Particles != def.Particles {
		dst.Particles = file.Particles
	}
	if file.Sources != def.Sources {
		dst.Sources = file.Sources
	}
	if file.Box != def.Box {
		dst.Box = file.Box
	}
}
