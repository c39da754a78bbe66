package physics

import "github.com/go-gl/mathgl/mgl64"

// Integrate advances pos by vel scaled with speed. When damp is set the
// velocity then loses the drag fraction on every axis.
func Integrate(pos, vel mgl64.Vec3, speed, drag float64, damp bool) (mgl64.Vec3, mgl64.Vec3) {
	pos = pos.Add(vel.Mul(speed))
	if damp {
		vel = vel.Mul(1 - drag)
	}
	return pos, vel
}
