package sim

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/physics"
)

// newSources places n gravity sources at random points inside the box with a
// random unit-range velocity.
func newSources(n int, half mgl64.Vec3, rng *rand.Rand) []physics.Body {
	sources := make([]physics.Body, n)
	for i := range sources {
		sources[i] = physics.Body{
			Position: particles.InBox(rng, half),
			Velocity: particles.UnitVelocity(rng),
		}
	}
	return sources
}

// moveSources drifts every source one frame. Sources are never damped.
func moveSources(sources []physics.Body, cfg Config) {
	for i := range sources {
		sources[i].Move(cfg.SourceSpeed, 0, false)
		sources[i].Bounce(cfg.HalfExtents)
	}
}
