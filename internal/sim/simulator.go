package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/physics"
)

// Simulator owns the particle pool and the gravity sources and advances them
// one frame at a time. It is not safe for concurrent use; render adapters call
// Step from their own frame callback.
type Simulator struct {
	pool    *particles.Pool
	sources []physics.Body
	color   mgl64.Vec3
	velCol  bool
	half    mgl64.Vec3

	seed  int64
	rng   *rand.Rand
	frame int64

	metrics   []Metric
	observers []Observer
}

func New(cfg Config, seed int64) *Simulator {
	s := &Simulator{
		seed:      seed,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	s.Reset(cfg)
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Reset rebuilds sources and particles from scratch using the seed it was created with.
func (s *Simulator) Reset(cfg Config) {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.frame = 0
	s.sources = newSources(cfg.sources(), cfg.HalfExtents, s.rng)
	s.Resize(cfg)
	s.color = cfg.Color
	s.velCol = cfg.VelocityColor
	s.half = cfg.HalfExtents
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Resize replaces the particle pool with a freshly built one sized and moded
// after cfg. The new pool is complete before it becomes visible.
func (s *Simulator) Resize(cfg Config) {
	next := particles.New(cfg.Mode, cfg.count(), s.env(cfg), s.rng)
	s.pool = next
}

// Len returns the current pool capacity.
func (s *Simulator) Len() int { return s.pool.Len() }

// FrameIndex returns the number of completed steps since the last reset.
func (s *Simulator) FrameIndex() int64 { return s.frame }

// Step runs one frame: particles first, then the sources, then observers.
func (s *Simulator) Step(cfg Config) Frame {
	s.reconcile(cfg)

	s.pool.Update(s.env(cfg))
	moveSources(s.sources, cfg)
	s.frame++

	f := s.Frame()
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, obs := range s.observers {
		obs.OnFrame(f)
	}
	return f
}

// Run steps the simulation for n frames with a fixed config, checking ctx
// between frames.
func (s *Simulator) Run(ctx context.Context, cfg Config, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Step(cfg)
	}
	return nil
}

// Frame returns a read-only view of the current state.
func (s *Simulator) Frame() Frame {
	return Frame{
		Index:       s.frame,
		Mode:        s.pool.Mode(),
		Positions:   s.pool.Position,
		Velocities:  s.pool.Velocity,
		Colors:      s.pool.Color,
		TTL:         s.pool.TTL,
		Sources:     s.sources,
		HalfExtents: s.half,
		Respawned:   s.pool.Respawned(),
	}
}

// reconcile applies structural config changes before the frame runs.
func (s *Simulator) reconcile(cfg Config) {
	s.half = cfg.HalfExtents
	if s.pool.Len() != cfg.count() || s.pool.Mode() != cfg.Mode {
		s.Resize(cfg)
	}
	if len(s.sources) != cfg.sources() {
		s.sources = newSources(cfg.sources(), cfg.HalfExtents, s.rng)
	}
	// Static particles keep their color until told otherwise, so a new base
	// color or switching velocity coloring off repaints them.
	if cfg.Color != s.color || (s.velCol && !cfg.VelocityColor) {
		if s.pool.Mode() == particles.Static && !cfg.VelocityColor {
			s.pool.Recolor(cfg.Color)
		}
	}
	s.color, s.velCol = cfg.Color, cfg.VelocityColor
	if s.pool.Len() != cfg.count() {
		panic(fmt.Sprintf("sim: pool holds %d particles, config wants %d", s.pool.Len(), cfg.count()))
	}
}

func (s *Simulator) env(cfg Config) particles.Env {
	env := particles.Env{
		Half:          cfg.HalfExtents,
		Gravity:       cfg.gravity(),
		Sources:       s.sources,
		Speed:         cfg.ParticleSpeed,
		Drag:          cfg.Drag,
		Color:         cfg.Color,
		VelocityColor: cfg.VelocityColor,
		TTL:           int32(min(cfg.TTL, math.MaxInt32)),
	}
	if len(s.sources) > 0 {
		env.Emitter = s.sources[0]
	}
	return env
}
