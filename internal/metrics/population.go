package metrics

import "github.com/san-kum/gravsim/internal/sim"

// LiveFraction is the share of pool slots holding a visible particle in the
// latest frame. Static pools always report 1.
type LiveFraction struct {
	name  string
	value float64
}

func NewLiveFraction() *LiveFraction {
	return &LiveFraction{name: "live_fraction"}
}

func (l *LiveFraction) Name() string { return l.name }

func (l *LiveFraction) Observe(f sim.Frame) {
	if f.Len() == 0 {
		l.value = 0
		return
	}
	live := 0
	for i := 0; i < f.Len(); i++ {
		if f.Live(i) {
			live++
		}
	}
	l.value = float64(live) / float64(f.Len())
}

func (l *LiveFraction) Value() float64 { return l.value }

func (l *LiveFraction) Reset() { l.value = 0 }

// RespawnRate is the mean number of respawns per observed frame.
type RespawnRate struct {
	name      string
	respawned int
	frames    int
}

func NewRespawnRate() *RespawnRate {
	return &RespawnRate{name: "respawn_rate"}
}

func (r *RespawnRate) Name() string { return r.name }

func (r *RespawnRate) Observe(f sim.Frame) {
	r.respawned += f.Respawned
	r.frames++
}

func (r *RespawnRate) Value() float64 {
	if r.frames == 0 {
		return 0
	}
	return float64(r.respawned) / float64(r.frames)
}

func (r *RespawnRate) Reset() {
	r.respawned = 0
	r.frames = 0
}

// All returns one fresh instance of every frame metric.
func All() []sim.Metric {
	return []sim.Metric{
		NewMeanSpeed(),
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewContainment(),
		NewLiveFraction(),
		NewRespawnRate(),
	}
}
