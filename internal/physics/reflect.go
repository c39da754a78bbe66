package physics

import "github.com/go-gl/mathgl/mgl64"

var axes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Reflect returns vel after bouncing off every face of the box
// [-half, half] that pos lies beyond. Axes are checked independently, so a
// body in a corner can bounce on several axes at once. The position is never
// clamped back inside.
func Reflect(pos, vel, half mgl64.Vec3) mgl64.Vec3 {
	for a, n := range axes {
		if pos[a] > half[a] {
			vel = reflectOff(vel, n.Mul(-1))
		}
		if pos[a] < -half[a] {
			vel = reflectOff(vel, n)
		}
	}
	return vel
}

// reflectOff mirrors v about the plane with unit normal n.
func reflectOff(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Inside reports whether pos lies within the box [-half, half].
func Inside(pos, half mgl64.Vec3) bool {
	for a := range pos {
		if pos[a] > half[a] || pos[a] < -half[a] {
			return false
		}
	}
	return true
}
