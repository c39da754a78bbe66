package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Particles.Count != 100000 {
		t.Errorf("expected 100000 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Sources.Count != 1 {
		t.Errorf("expected a single comet, got %d sources", cfg.Sources.Count)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSimConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.Color = "#ff0000"
	cfg.Box.Height = 10

	s := cfg.Sim()
	assert.Equal(t, particles.Static, s.Mode)
	assert.Equal(t, 20.0, s.BoxScale)
	assert.Equal(t, 10.0, s.HalfExtents[0])
	assert.Equal(t, 5.0, s.HalfExtents[1])
	assert.InDelta(t, 1.0, s.Color[0], 1e-9)
	assert.InDelta(t, 0.0, s.Color[1], 1e-9)
	assert.Equal(t, 1.5, s.Gravity)
	assert.Equal(t, 25.0, s.PullRadius)
}

func TestInvalidColorFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.Color = "teal-ish"

	assert.Error(t, cfg.Validate())
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, cfg.Sim().Color)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Mode = "swirl"
	assert.ErrorIs(t, cfg.Validate(), sim.ErrUnknownMode)

	cfg = DefaultConfig()
	cfg.Scene.Mode = "emitted"
	cfg.Particles.TTL = 0
	assert.ErrorIs(t, cfg.Validate(), sim.ErrInvalidTTL)

	cfg = DefaultConfig()
	cfg.Box.Size = -1
	assert.ErrorIs(t, cfg.Validate(), sim.ErrInvalidBox)
}

func TestClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.Count = 5
	cfg.Particles.Drag = 0.5
	cfg.Sources.PullRadius = 0
	cfg.Sources.Strength = 100
	cfg.Box.Size = 0

	cfg.Clamp()

	assert.Equal(t, 100, cfg.Particles.Count)
	assert.Equal(t, 0.025, cfg.Particles.Drag)
	assert.Equal(t, 1.0, cfg.Sources.PullRadius)
	assert.Equal(t, 2.5, cfg.Sources.Strength)
	assert.Equal(t, DefaultBoxSize, cfg.Box.Size)
	assert.NoError(t, cfg.Validate())
}

func TestParams(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"count", 100, 300000},
		{"speed", 0.001, 0.1},
		{"drag", 0, 0.025},
		{"strength", 0.1, 2.5},
		{"pull_radius", 1, 50},
		{"source_speed", 0.01, 0.5},
	}

	for _, tt := range tests {
		p, ok := GetParam(tt.name)
		if !ok {
			t.Fatalf("missing param %s", tt.name)
		}
		if p.Min != tt.min || p.Max != tt.max {
			t.Errorf("%s: expected [%g, %g], got [%g, %g]", tt.name, tt.min, tt.max, p.Min, p.Max)
		}
	}

	cfg := DefaultConfig()
	p, _ := GetParam("strength")
	p.Nudge(cfg, 1)
	assert.InDelta(t, 1.6, cfg.Sources.Strength, 1e-9)
	for i := 0; i < 100; i++ {
		p.Nudge(cfg, -1)
	}
	assert.Equal(t, 0.1, cfg.Sources.Strength)

	_, ok := GetParam("nonexistent")
	assert.False(t, ok)
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("trail")
	require.NoError(t, err)
	assert.Equal(t, particles.Emitted, cfg.Mode())
	assert.Equal(t, 120, cfg.Particles.TTL)

	cfg.Particles.TTL = 1
	again, _ := GetPreset("trail")
	assert.Equal(t, 120, again.Particles.TTL)

	holes, _ := GetPreset("black-holes")
	assert.Equal(t, 5, holes.Sources.Count)
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg, err := GetPreset("nonexistent")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, sim.ErrUnknownPreset)
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	assert.Equal(t, []string{"black-holes", "calm", "comet", "dense", "trail"}, names)
	for _, name := range names {
		cfg, _ := GetPreset(name)
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestLoadSaveYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	cfg := DefaultConfig()
	cfg.Scene.Mode = "emitted"
	cfg.Particles.TTL = 90
	cfg.Sources.PullRadius = 12
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  count: 3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Sources.Count)
	assert.Equal(t, DefaultCount, cfg.Particles.Count)
	assert.Equal(t, DefaultPullRadius, cfg.Sources.PullRadius)
}

func TestLoadGcfg(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gcfg")
	data := `
[scene]
mode = emitted
seed = 7

[particles]
count = 5000
color = "#00ff00"
velocity-color = false

[sources]
pull-radius = 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, particles.Emitted, cfg.Mode())
	assert.Equal(t, int64(7), cfg.Scene.Seed)
	assert.Equal(t, 5000, cfg.Particles.Count)
	assert.Equal(t, "#00ff00", cfg.Particles.Color)
	assert.False(t, cfg.Particles.VelocityColor)
	assert.Equal(t, 10.0, cfg.Sources.PullRadius)
	assert.Equal(t, DefaultDrag, cfg.Particles.Drag)
}

func TestSaveGcfgRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.ini")

	cfg, _ := GetPreset("calm")
	cfg.Box.Depth = 8
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.gcfg"))
	assert.Error(t, err)
}
