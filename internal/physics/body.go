package physics

import "github.com/go-gl/mathgl/mgl64"

// Body is anything that moves through the box: a gravity source, or a single
// particle lifted out of a pool.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Move integrates the body one frame.
func (b *Body) Move(speed, drag float64, damp bool) {
	b.Position, b.Velocity = Integrate(b.Position, b.Velocity, speed, drag, damp)
}

// Bounce reflects the body off the box walls it is currently beyond.
func (b *Body) Bounce(half mgl64.Vec3) {
	b.Velocity = Reflect(b.Position, b.Velocity, half)
}

// Attract applies the pull of every source in order.
func (b *Body) Attract(sources []Body, g Gravity) {
	for i := range sources {
		b.Velocity = ApplyGravity(b.Position, b.Velocity, sources[i].Position, g)
	}
}
