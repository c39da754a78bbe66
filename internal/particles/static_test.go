package particles

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/physics"
)

var _ = Describe("Static pool", func() {
	half := mgl64.Vec3{10, 10, 10}
	white := mgl64.Vec3{1, 1, 1}

	It("places particles inside the box with unit velocities", func() {
		pool := NewStatic(500, half, white, rand.New(rand.NewSource(4)))

		Expect(pool.Len()).To(Equal(500))
		Expect(pool.Live()).To(Equal(500))
		for i := 0; i < pool.Len(); i++ {
			Expect(physics.Inside(pool.Position[i], half)).To(BeTrue())
			for a := 0; a < 3; a++ {
				Expect(pool.Velocity[i][a]).To(BeNumerically(">=", 0))
				Expect(pool.Velocity[i][a]).To(BeNumerically("<", 1))
			}
			Expect(pool.Color[i]).To(Equal(white))
			Expect(pool.TTL[i]).To(BeZero())
		}
	})

	It("reflects, pulls and damps every particle", func() {
		pool := NewStatic(1, half, white, rand.New(rand.NewSource(5)))
		pool.Position[0] = mgl64.Vec3{10.1, 0, 0}
		pool.Velocity[0] = mgl64.Vec3{1, 0, 0}

		pool.Update(Env{
			Half:    half,
			Gravity: physics.Gravity{Strength: 1.5, BoxScale: 20, PullRadius: 25},
			Sources: []physics.Body{{Position: mgl64.Vec3{-100, 0, 0}}},
			Speed:   0.5,
			Drag:    0.5,
		})

		Expect(pool.Velocity[0][0]).To(BeNumerically("~", -0.5, 1e-12))
		Expect(pool.Position[0][0]).To(BeNumerically("~", 9.6, 1e-12))
		Expect(pool.Respawned()).To(BeZero())
	})

	It("colors particles by velocity when asked to", func() {
		pool := NewStatic(1, half, white, rand.New(rand.NewSource(6)))
		pool.Velocity[0] = mgl64.Vec3{-0.5, 3, 0}

		pool.Update(Env{Half: half, Speed: 0.01, VelocityColor: true})

		Expect(pool.Color[0]).To(Equal(mgl64.Vec3{0.5, 1, 0}))
	})

	It("recolors in place", func() {
		pool := NewStatic(3, half, white, rand.New(rand.NewSource(7)))
		red := mgl64.Vec3{1, 0, 0}
		pool.Recolor(red)
		for i := range pool.Color {
			Expect(pool.Color[i]).To(Equal(red))
		}
	})
})

var _ = Describe("Mode", func() {
	DescribeTable("parsing",
		func(in string, want Mode, ok bool) {
			got, err := ParseMode(in)
			if !ok {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("empty defaults to static", "", Static, true),
		Entry("static", "static", Static, true),
		Entry("emitted", "Emitted", Emitted, true),
		Entry("trail alias", "trail", Emitted, true),
		Entry("unknown", "swarm", Static, false),
	)

	It("builds the requested pool kind", func() {
		rng := rand.New(rand.NewSource(8))
		Expect(New(Emitted, 4, Env{}, rng).Mode()).To(Equal(Emitted))
		Expect(New(Static, 4, Env{Half: mgl64.Vec3{1, 1, 1}}, rng).Mode()).To(Equal(Static))
		Expect(New(Static, -3, Env{}, rng).Len()).To(BeZero())
	})
})
