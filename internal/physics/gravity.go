package physics

import "github.com/go-gl/mathgl/mgl64"

// GravityConstant is the stylized gravitational constant of the simulation.
const GravityConstant = 0.066726

// Gravity holds the per-frame gravity settings shared by all sources.
type Gravity struct {
	Strength   float64
	BoxScale   float64
	PullRadius float64
}

// Acceleration returns the pull magnitude at distance d from a source.
func (g Gravity) Acceleration(d float64) float64 {
	return g.Strength * g.BoxScale / 2 * GravityConstant / (d * d)
}

// Reaches reports whether an acceleration passes the pull radius gate.
// A non-positive pull radius switches the sources off.
func (g Gravity) Reaches(acc float64) bool {
	return g.PullRadius > 0 && acc > 1/g.PullRadius
}

// ApplyGravity returns vel perturbed by the source at src.
//
// The update is skipped entirely outside the pull radius and is a no-op when
// pos sits exactly on the source. The pull is scaled by the raw offset to the
// source rather than its direction, so close bodies get an outsized kick; the
// speed clamp keeps the result bounded by the box scale.
func ApplyGravity(pos, vel, src mgl64.Vec3, g Gravity) mgl64.Vec3 {
	toCentre := pos.Sub(src)
	d := toCentre.Len()
	if d == 0 {
		return vel
	}

	if acc := g.Acceleration(d); g.Reaches(acc) {
		vel = vel.Sub(toCentre.Mul(acc))
	}
	return ClampSpeed(vel, g.BoxScale)
}

// ClampSpeed rescales vel so that its length does not exceed limit.
func ClampSpeed(vel mgl64.Vec3, limit float64) mgl64.Vec3 {
	if limit <= 0 {
		return vel
	}
	if scale := vel.Len() / limit; scale > 1 {
		vel = vel.Mul(1 / scale)
	}
	return vel
}
