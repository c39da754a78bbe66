package particles

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/physics"
)

// Env is the per-frame input of a pool update. It is rebuilt from the
// simulation config on every frame.
type Env struct {
	Half    mgl64.Vec3
	Gravity physics.Gravity
	Sources []physics.Body

	Speed float64
	Drag  float64

	Color         mgl64.Vec3
	VelocityColor bool

	// Emitted mode only.
	Emitter physics.Body
	TTL     int32
}

// Pool is a fixed-capacity structure-of-arrays particle store.
type Pool struct {
	Position []mgl64.Vec3
	Velocity []mgl64.Vec3
	Color    []mgl64.Vec3
	TTL      []int32

	mode Mode
	rng  *rand.Rand

	// emission clock, see emissionBudget
	ttlMax              int32
	framesSinceEmission int
	emitted             int

	respawned int
}

func newPool(n int, mode Mode, rng *rand.Rand) *Pool {
	if n < 0 {
		n = 0
	}
	return &Pool{
		Position: make([]mgl64.Vec3, n),
		Velocity: make([]mgl64.Vec3, n),
		Color:    make([]mgl64.Vec3, n),
		TTL:      make([]int32, n),
		mode:     mode,
		rng:      rng,
	}
}

// New builds a pool of n particles for the given mode.
func New(mode Mode, n int, env Env, rng *rand.Rand) *Pool {
	if mode == Emitted {
		return NewEmitted(n, rng)
	}
	return NewStatic(n, env.Half, env.Color, rng)
}

// Len returns the pool capacity.
func (p *Pool) Len() int { return len(p.Position) }

// Mode returns the population strategy.
func (p *Pool) Mode() Mode { return p.mode }

// Respawned returns how many slots were respawned by the last Update.
func (p *Pool) Respawned() int { return p.respawned }

// Live counts slots that currently hold a particle. Static pools are always
// fully live.
func (p *Pool) Live() int {
	if p.mode == Static {
		return p.Len()
	}
	n := 0
	for _, ttl := range p.TTL {
		if ttl > 0 {
			n++
		}
	}
	return n
}

// Update advances every particle one frame and returns the number of
// respawned slots.
func (p *Pool) Update(env Env) int {
	p.check()
	p.respawned = 0
	switch p.mode {
	case Emitted:
		p.updateEmitted(env)
	default:
		p.updateStatic(env)
	}
	return p.respawned
}

// Recolor paints every particle with c.
func (p *Pool) Recolor(c mgl64.Vec3) {
	for i := range p.Color {
		p.Color[i] = c
	}
}

// check panics when the parallel slices disagree; that can only be a bug.
func (p *Pool) check() {
	n := len(p.Position)
	if len(p.Velocity) != n || len(p.Color) != n || len(p.TTL) != n {
		panic(fmt.Sprintf("particles: parallel buffers out of sync: pos=%d vel=%d color=%d ttl=%d",
			n, len(p.Velocity), len(p.Color), len(p.TTL)))
	}
}
