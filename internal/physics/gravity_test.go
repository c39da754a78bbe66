package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyGravity_ZeroDistance(t *testing.T) {
	g := Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25}
	src := mgl64.Vec3{1, 2, 3}
	// a velocity above the clamp proves the early return skips the clamp too
	vel := mgl64.Vec3{100, -50, 7}

	assert.Equal(t, vel, ApplyGravity(src, vel, src, g))
}

func TestApplyGravity_OutsidePullRadius(t *testing.T) {
	g := Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25}
	pos := mgl64.Vec3{100, 0, 0}
	vel := mgl64.Vec3{0.5, 0.25, 0}

	acc := g.Acceleration(100)
	assert.InDelta(t, 1.5*10*0.066726/10000, acc, 1e-15)
	assert.InDelta(t, 0.000100089, acc, 1e-9)
	assert.False(t, g.Reaches(acc), "threshold is 1/25 = 0.04")

	assert.Equal(t, vel, ApplyGravity(pos, vel, mgl64.Vec3{}, g))
}

func TestApplyGravity_InsidePullRadius(t *testing.T) {
	g := Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25}
	pos := mgl64.Vec3{2, 0, 0}
	vel := mgl64.Vec3{0, 1, 0}

	acc := g.Acceleration(2)
	require.True(t, g.Reaches(acc))

	got := ApplyGravity(pos, vel, mgl64.Vec3{}, g)
	assert.InDelta(t, -2*acc, got[0], 1e-12, "pulled toward the source by the raw offset")
	assert.InDelta(t, 1.0, got[1], 1e-12)
	assert.InDelta(t, 0.0, got[2], 1e-12)
}

func TestApplyGravity_NonPositivePullRadiusDisablesSource(t *testing.T) {
	g := Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 0}
	vel := mgl64.Vec3{0, 1, 0}

	assert.Equal(t, vel, ApplyGravity(mgl64.Vec3{0.1, 0, 0}, vel, mgl64.Vec3{}, g))
}

func TestApplyGravity_ClampsSpeed(t *testing.T) {
	g := Gravity{Strength: 2.5, BoxScale: 20, PullRadius: 50}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		pos := mgl64.Vec3{rng.Float64()*4 - 2, rng.Float64()*4 - 2, rng.Float64()*4 - 2}
		vel := mgl64.Vec3{rng.Float64()*60 - 30, rng.Float64()*60 - 30, rng.Float64()*60 - 30}

		got := ApplyGravity(pos, vel, mgl64.Vec3{}, g)
		assert.LessOrEqual(t, got.Len(), g.BoxScale*(1+1e-12))
	}
}

func TestApplyGravity_ClampAppliesWhenGated(t *testing.T) {
	g := Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25}
	vel := mgl64.Vec3{30, 40, 0}

	got := ApplyGravity(mgl64.Vec3{100, 0, 0}, vel, mgl64.Vec3{}, g)
	assert.InDelta(t, 20, got.Len(), 1e-9)
	assert.InDelta(t, 0.6, got[0]/got.Len(), 1e-12, "direction preserved")
}

func TestApplyGravity_SequentialSources(t *testing.T) {
	g := Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25}
	sources := []Body{
		{Position: mgl64.Vec3{1, 0, 0}},
		{Position: mgl64.Vec3{-1, 0, 0}},
	}

	b := Body{Position: mgl64.Vec3{0, 0.5, 0}}
	b.Attract(sources, g)

	want := ApplyGravity(b.Position, ApplyGravity(b.Position, mgl64.Vec3{}, sources[0].Position, g), sources[1].Position, g)
	assert.Equal(t, want, b.Velocity)
	assert.InDelta(t, 0.0, b.Velocity[0], 1e-12, "symmetric sources cancel on x")
	assert.Less(t, b.Velocity[1], 0.0)
}

func TestClampSpeed(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{3, 4, 0}, ClampSpeed(mgl64.Vec3{3, 4, 0}, 5))
	assert.InDelta(t, 1.0, ClampSpeed(mgl64.Vec3{3, 4, 0}, 1).Len(), 1e-12)
	assert.Equal(t, mgl64.Vec3{3, 4, 0}, ClampSpeed(mgl64.Vec3{3, 4, 0}, 0))
	assert.False(t, math.IsNaN(ClampSpeed(mgl64.Vec3{}, 1)[0]))
}
