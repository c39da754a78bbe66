package metrics

import (
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

// Containment is the fraction of live particles inside the box, averaged over
// observed frames. Reflection flips velocity without clamping position, so a
// fast particle can sit just outside for a frame or two.
type Containment struct {
	name    string
	total   float64
	samples int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f sim.Frame) {
	inside, live := 0, 0
	for i, p := range f.Positions {
		if !f.Live(i) {
			continue
		}
		live++
		if physics.Inside(p, f.HalfExtents) {
			inside++
		}
	}
	c.samples++
	if live == 0 {
		c.total += 1
		return
	}
	c.total += float64(inside) / float64(live)
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return c.total / float64(c.samples)
}

func (c *Containment) Reset() {
	c.total = 0
	c.samples = 0
}
