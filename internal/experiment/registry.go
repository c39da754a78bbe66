package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["mean_speed"] = func() sim.Metric { return metrics.NewMeanSpeed() }
	r.metrics["kinetic_energy"] = func() sim.Metric { return metrics.NewKineticEnergy() }
	r.metrics["energy_drift"] = func() sim.Metric { return metrics.NewEnergyDrift() }
	r.metrics["containment"] = func() sim.Metric { return metrics.NewContainment() }
	r.metrics["live_fraction"] = func() sim.Metric { return metrics.NewLiveFraction() }
	r.metrics["respawn_rate"] = func() sim.Metric { return metrics.NewRespawnRate() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// GetMetrics builds the named metrics in order. The single name "all" selects
// every metric.
func (r *Registry) GetMetrics(names []string) ([]sim.Metric, error) {
	if len(names) == 1 && names[0] == "all" {
		return metrics.All(), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the metrics worth watching for a pool mode. Emitted
// scenes add the population metrics.
func (r *Registry) DefaultMetrics(cfg sim.Config) []sim.Metric {
	m := []sim.Metric{
		metrics.NewMeanSpeed(),
		metrics.NewEnergyDrift(),
		metrics.NewContainment(),
	}
	if cfg.Mode == particles.Emitted {
		m = append(m, metrics.NewLiveFraction(), metrics.NewRespawnRate())
	}
	return m
}
