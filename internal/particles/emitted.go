package particles

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/physics"
)

// NewEmitted builds n free slots. Nothing is visible until the emitter starts
// spawning on the first Update.
func NewEmitted(n int, rng *rand.Rand) *Pool {
	return newPool(n, Emitted, rng)
}

// emissionBudget advances the emission clock one frame and returns how many
// free slots may respawn this frame.
//
// The clock runs in windows of ttlMax frames. By frame k of a window exactly
// floor(k*count/ttlMax) respawns are due, so a full window respawns count
// particles: one every ttlMax/count frames when count < ttlMax, a burst of
// about count/ttlMax per frame otherwise.
func (p *Pool) emissionBudget(ttl int32) int {
	if ttl < 1 {
		ttl = 1
	}
	if ttl != p.ttlMax {
		p.ttlMax = ttl
		p.framesSinceEmission, p.emitted = 0, 0
	}
	if p.framesSinceEmission >= int(p.ttlMax) {
		p.framesSinceEmission, p.emitted = 0, 0
	}
	p.framesSinceEmission++
	due := p.framesSinceEmission * p.Len() / int(p.ttlMax)
	return due - p.emitted
}

func (p *Pool) updateEmitted(env Env) {
	budget := p.emissionBudget(env.TTL)

	for i := range p.Position {
		ttl := p.TTL[i]
		if ttl < 0 {
			panic(fmt.Sprintf("particles: negative ttl %d in slot %d", ttl, i))
		}
		if ttl == 0 {
			if budget == 0 {
				continue
			}
			p.respawn(i, env)
			budget--
		}

		p.TTL[i]--
		if p.TTL[i] == 0 {
			continue
		}

		pos, vel := p.Position[i], p.Velocity[i]
		for s := range env.Sources {
			vel = physics.ApplyGravity(pos, vel, env.Sources[s].Position, env.Gravity)
		}
		p.Position[i], p.Velocity[i] = physics.Integrate(pos, vel, env.Speed, env.Drag, true)
	}
}

// respawn resets slot i at the emitter. The random deviation added to the
// emitter velocity is also encoded in the color.
func (p *Pool) respawn(i int, env Env) {
	deviance := env.Gravity.BoxScale / 2
	var dev, color mgl64.Vec3
	for a := 0; a < 3; a++ {
		dev[a] = centerRandom(p.rng, deviance)
		color[a] = env.Color[a]
		if deviance > 0 {
			color[a] += (1 - env.Color[a]) * math.Abs(dev[a]) / deviance
		}
	}

	p.Position[i] = env.Emitter.Position
	p.Velocity[i] = env.Emitter.Velocity.Add(dev)
	p.Color[i] = color
	p.TTL[i] = p.ttlMax
	p.emitted++
	p.respawned++
}
