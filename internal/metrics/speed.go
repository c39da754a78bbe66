package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/sim"
)

// MeanSpeed averages the speed of live particles over every observed frame.
type MeanSpeed struct {
	name    string
	total   float64
	samples int
	last    float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(f sim.Frame) {
	sum, n := 0.0, 0
	for i, v := range f.Velocities {
		if !f.Live(i) {
			continue
		}
		sum += v.Len()
		n++
	}
	if n == 0 {
		m.last = 0
	} else {
		m.last = sum / float64(n)
	}
	m.total += m.last
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

// Last returns the mean speed of the most recent frame.
func (m *MeanSpeed) Last() float64 { return m.last }

func (m *MeanSpeed) Reset() {
	m.total = 0
	m.samples = 0
	m.last = 0
}

// KineticEnergy tracks the mean per-particle kinetic energy 0.5|v|² of the
// latest frame, with unit mass.
type KineticEnergy struct {
	name   string
	energy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(f sim.Frame) {
	k.energy = kinetic(f)
}

func (k *KineticEnergy) Value() float64 { return k.energy }

func (k *KineticEnergy) Reset() { k.energy = 0 }

// EnergyDrift records the largest relative departure of the mean kinetic
// energy from its value on the first observed frame. Drag and the speed clamp
// make this non-zero for any real scene.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	energy := kinetic(f)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / e.initial
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

func kinetic(f sim.Frame) float64 {
	sum, n := 0.0, 0
	for i, v := range f.Velocities {
		if !f.Live(i) {
			continue
		}
		sum += 0.5 * v.Dot(v)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
