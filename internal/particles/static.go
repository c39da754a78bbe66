package particles

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/physics"
)

// NewStatic builds n particles placed uniformly inside the box with a random
// velocity in [0, 1) per axis. Particles that start outside are bounced on
// their first frame.
func NewStatic(n int, half, color mgl64.Vec3, rng *rand.Rand) *Pool {
	p := newPool(n, Static, rng)
	for i := range p.Position {
		p.Position[i] = InBox(rng, half)
		p.Velocity[i] = UnitVelocity(rng)
		p.Color[i] = color
	}
	return p
}

func (p *Pool) updateStatic(env Env) {
	for i := range p.Position {
		pos, vel := p.Position[i], p.Velocity[i]

		vel = physics.Reflect(pos, vel, env.Half)
		for s := range env.Sources {
			vel = physics.ApplyGravity(pos, vel, env.Sources[s].Position, env.Gravity)
		}
		pos, vel = physics.Integrate(pos, vel, env.Speed, env.Drag, true)

		p.Position[i], p.Velocity[i] = pos, vel
		if env.VelocityColor {
			p.Color[i] = velocityColor(vel)
		}
	}
}

// velocityColor maps a velocity to a color, one axis per channel.
func velocityColor(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{channel(v[0]), channel(v[1]), channel(v[2])}
}

func channel(x float64) float64 {
	return math.Min(math.Abs(x), 1)
}
