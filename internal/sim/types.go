package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/physics"
)

// Config is the snapshot of tunables read by one Step. Callers build a fresh
// one every frame so edits land on the next frame boundary.
type Config struct {
	Mode    particles.Mode
	Count   int
	Sources int
	TTL     int

	BoxScale    float64
	HalfExtents mgl64.Vec3

	Gravity    float64
	PullRadius float64

	ParticleSpeed float64
	SourceSpeed   float64
	Drag          float64

	Color         mgl64.Vec3
	VelocityColor bool
}

// DefaultConfig mirrors the single comet scene.
func DefaultConfig() Config {
	return Config{
		Mode:          particles.Static,
		Count:         100000,
		Sources:       1,
		TTL:           60,
		BoxScale:      20,
		HalfExtents:   mgl64.Vec3{10, 10, 10},
		Gravity:       1.5,
		PullRadius:    25,
		ParticleSpeed: 0.01,
		SourceSpeed:   0.2,
		Drag:          0.0165,
		Color:         mgl64.Vec3{1, 1, 1},
		VelocityColor: true,
	}
}

func (c Config) gravity() physics.Gravity {
	return physics.Gravity{Strength: c.Gravity, BoxScale: c.BoxScale, PullRadius: c.PullRadius}
}

func (c Config) count() int {
	if c.Count < 0 {
		return 0
	}
	return c.Count
}

func (c Config) sources() int {
	if c.Sources < 0 {
		return 0
	}
	return c.Sources
}

// Frame is a read-only view of the simulation after a step. The slices alias
// simulator storage and stay valid until the next Step or Reset.
type Frame struct {
	Index int64
	Mode  particles.Mode

	Positions  []mgl64.Vec3
	Velocities []mgl64.Vec3
	Colors     []mgl64.Vec3
	TTL        []int32

	Sources []physics.Body

	HalfExtents mgl64.Vec3
	Respawned   int
}

// Len returns the number of particle slots in the frame.
func (f Frame) Len() int { return len(f.Positions) }

// Live reports whether slot i holds a visible particle.
func (f Frame) Live(i int) bool {
	return f.Mode == particles.Static || f.TTL[i] > 0
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}
