package particles

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// centerRandom returns a value uniform in [-r, r).
func centerRandom(rng *rand.Rand, r float64) float64 {
	return (rng.Float64()*2 - 1) * r
}

// InBox returns a point uniform inside the box [-half, half).
func InBox(rng *rand.Rand, half mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		centerRandom(rng, half[0]),
		centerRandom(rng, half[1]),
		centerRandom(rng, half[2]),
	}
}

// UnitVelocity returns a velocity uniform in [0, 1) on every axis.
func UnitVelocity(rng *rand.Rand) mgl64.Vec3 {
	return mgl64.Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
}
