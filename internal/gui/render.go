package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Above this many particles each one is a single point; below it, a small
// cube sized by the particle size setting.
const cubeLimit = 20000

func toVector(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

func toColor(c mgl64.Vec3) rl.Color {
	r, g, b := colorful.Color{R: c[0], G: c[1], B: c[2]}.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func (a *App) drawScene() {
	rl.BeginMode3D(a.Camera)

	f := a.Frame
	half := f.HalfExtents
	size := toVector(half.Mul(2))
	rl.DrawCubeWiresV(rl.NewVector3(0, 0, 0), size, ColBox)

	o := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(o, rl.NewVector3(float32(half[0]), 0, 0), rl.Red)
	rl.DrawLine3D(o, rl.NewVector3(0, float32(half[1]), 0), rl.Green)
	rl.DrawLine3D(o, rl.NewVector3(0, 0, float32(half[2])), rl.Blue)

	cube := float32(a.Cfg.Particles.Size * a.Cfg.Box.Size / 4)
	cubes := f.Len() <= cubeLimit
	for i := 0; i < f.Len(); i++ {
		if !f.Live(i) {
			continue
		}
		pos, col := toVector(f.Positions[i]), toColor(f.Colors[i])
		if cubes {
			rl.DrawCube(pos, cube, cube, cube, col)
		} else {
			rl.DrawPoint3D(pos, col)
		}
	}

	radius := float32(a.Cfg.Box.Size / 20)
	for _, src := range f.Sources {
		p := toVector(src.Position)
		rl.DrawSphereEx(p, radius, 10, 10, ColSource)
		rl.DrawSphereWires(p, radius*1.05, 6, 6, rl.ColorAlpha(rl.Purple, 0.4))
	}

	rl.EndMode3D()
}
