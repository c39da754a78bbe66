package particles

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/physics"
)

func emittedEnv(ttl int32) Env {
	emitter := physics.Body{Position: mgl64.Vec3{1, 2, 3}, Velocity: mgl64.Vec3{0.5, 0, 0}}
	return Env{
		Half:    mgl64.Vec3{10, 10, 10},
		Gravity: physics.Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25},
		Sources: []physics.Body{emitter},
		Speed:   0.01,
		Drag:    0.0165,
		Color:   mgl64.Vec3{0.2, 0.4, 0.6},
		Emitter: emitter,
		TTL:     ttl,
	}
}

var _ = Describe("Emitted pool", func() {
	var (
		pool *Pool
		env  Env
	)

	BeforeEach(func() {
		pool = NewEmitted(100, rand.New(rand.NewSource(1)))
		env = emittedEnv(60)
	})

	It("starts with every slot free", func() {
		Expect(pool.Len()).To(Equal(100))
		Expect(pool.Live()).To(BeZero())
		Expect(pool.Mode()).To(Equal(Emitted))
	})

	It("respawns exactly count particles over the first ttl frames", func() {
		total := 0
		for f := 0; f < 60; f++ {
			total += pool.Update(env)
		}
		Expect(total).To(Equal(100))
	})

	It("respawns exactly count particles over any later ttl window", func() {
		perFrame := make([]int, 0, 400)
		for f := 0; f < 400; f++ {
			perFrame = append(perFrame, pool.Update(env))
		}
		for start := 0; start+60 <= len(perFrame); start += 7 {
			sum := 0
			for _, n := range perFrame[start : start+60] {
				sum += n
			}
			Expect(sum).To(Equal(100), "window starting at frame %d", start)
		}
	})

	It("gates single respawns when the population is smaller than the ttl", func() {
		pool = NewEmitted(10, rand.New(rand.NewSource(2)))
		var frames []int
		for f := 1; f <= 60; f++ {
			if pool.Update(env) > 0 {
				frames = append(frames, f)
			}
		}
		Expect(frames).To(Equal([]int{6, 12, 18, 24, 30, 36, 42, 48, 54, 60}))
	})

	It("places respawned particles at the emitter with a deviation-encoded color", func() {
		env.Speed, env.Drag = 0, 0
		pool.Update(env)

		Expect(pool.TTL[0]).To(Equal(int32(59)))
		Expect(pool.Position[0]).To(Equal(env.Emitter.Position))
		dev := pool.Velocity[0].Sub(env.Emitter.Velocity)
		for a := 0; a < 3; a++ {
			Expect(dev[a]).To(BeNumerically(">=", -10))
			Expect(dev[a]).To(BeNumerically("<", 10))
			Expect(pool.Color[0][a]).To(BeNumerically(">=", env.Color[a]))
			Expect(pool.Color[0][a]).To(BeNumerically("<=", 1))
		}
	})

	It("never respawns a slot on the frame it expires", func() {
		env.TTL = 3
		pool = NewEmitted(3, rand.New(rand.NewSource(3)))

		pool.Update(env) // one respawn, ttl 2
		Expect(pool.TTL[0]).To(Equal(int32(2)))
		pool.Update(env) // slot 0 -> 1, slot 1 spawned
		pool.Update(env) // slot 0 -> 0 and stays free this frame
		Expect(pool.TTL[0]).To(BeZero())
		Expect(pool.Respawned()).To(Equal(1))

		pool.Update(env) // new window picks slot 0 up again
		Expect(pool.TTL[0]).To(Equal(int32(2)))
	})

	It("does not reflect live particles off the walls", func() {
		env.Sources = nil
		env.Emitter = physics.Body{Position: mgl64.Vec3{9.99, 0, 0}, Velocity: mgl64.Vec3{20, 0, 0}}
		env.Gravity.BoxScale = 0
		env.Speed = 1
		env.Drag = 0

		for f := 0; f < 5; f++ {
			pool.Update(env)
		}
		Expect(pool.Position[0][0]).To(BeNumerically(">", 10))
		Expect(pool.Velocity[0][0]).To(BeNumerically(">", 0))
	})

	It("restarts the emission window when the ttl changes", func() {
		for f := 0; f < 10; f++ {
			pool.Update(env)
		}
		env.TTL = 20
		total := 0
		for f := 0; f < 20; f++ {
			total += pool.Update(env)
		}
		Expect(total).To(BeNumerically("<=", 100))
		Expect(pool.Live()).To(BeNumerically(">", 0))
	})

	It("panics on a negative ttl", func() {
		pool.TTL[5] = -1
		Expect(func() { pool.Update(env) }).To(Panic())
	})

	It("panics when the parallel buffers disagree", func() {
		pool.Color = pool.Color[:50]
		Expect(func() { pool.Update(env) }).To(Panic())
	})
})
