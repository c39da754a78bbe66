package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestReflect(t *testing.T) {
	half := mgl64.Vec3{10, 10, 10}

	tests := []struct {
		name string
		pos  mgl64.Vec3
		vel  mgl64.Vec3
		want mgl64.Vec3
	}{
		{"past +x", mgl64.Vec3{10.1, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}},
		{"past -x", mgl64.Vec3{-10.1, 0, 0}, mgl64.Vec3{-2, 1, 0}, mgl64.Vec3{2, 1, 0}},
		{"past +y", mgl64.Vec3{0, 11, 0}, mgl64.Vec3{0, 3, 1}, mgl64.Vec3{0, -3, 1}},
		{"past -z", mgl64.Vec3{0, 0, -12}, mgl64.Vec3{1, 1, -1}, mgl64.Vec3{1, 1, 1}},
		{"corner", mgl64.Vec3{11, -11, 11}, mgl64.Vec3{1, -1, 1}, mgl64.Vec3{-1, 1, -1}},
		{"inside", mgl64.Vec3{9, -9, 0}, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}},
		{"on face", mgl64.Vec3{10, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}},
		// still outside after last frame's bounce: flips again
		{"heading back", mgl64.Vec3{10.5, 0, 0}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reflect(tt.pos, tt.vel, half))
		})
	}
}

func TestReflect_DoesNotMovePosition(t *testing.T) {
	b := Body{Position: mgl64.Vec3{10.1, 0, 0}, Velocity: mgl64.Vec3{1, 0, 0}}
	b.Bounce(mgl64.Vec3{10, 10, 10})

	assert.Equal(t, mgl64.Vec3{10.1, 0, 0}, b.Position)
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, b.Velocity)
}

func TestReflect_PerAxisHalfExtents(t *testing.T) {
	half := mgl64.Vec3{5, 10, 20}
	pos := mgl64.Vec3{6, 6, 6}
	vel := mgl64.Vec3{1, 1, 1}

	assert.Equal(t, mgl64.Vec3{-1, 1, 1}, Reflect(pos, vel, half))
}

func TestInside(t *testing.T) {
	half := mgl64.Vec3{10, 10, 10}
	assert.True(t, Inside(mgl64.Vec3{0, 0, 0}, half))
	assert.True(t, Inside(mgl64.Vec3{10, -10, 10}, half))
	assert.False(t, Inside(mgl64.Vec3{10.1, 0, 0}, half))
	assert.False(t, Inside(mgl64.Vec3{0, 0, -10.1}, half))
}
