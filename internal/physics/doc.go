// Package physics provides the per-body building blocks of the particle
// simulation.
//
// Every function works on plain [mgl64.Vec3] values so the same code moves a
// particle stored in a structure-of-arrays pool and a gravity source stored as
// a [Body]:
//
//   - [Reflect]: flips velocity components when a body leaves the box
//   - [ApplyGravity]: pulls a velocity toward one gravity source
//   - [Integrate]: explicit Euler position update with optional drag
//
// # Example
//
//	g := physics.Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25}
//	v = physics.Reflect(p, v, half)
//	v = physics.ApplyGravity(p, v, hole.Position, g)
//	p, v = physics.Integrate(p, v, 0.01, 0.0165, true)
//
// The gravity model is stylized on purpose: the pull is not normalized by
// distance and only acts inside a hard-edged pull radius.
package physics
