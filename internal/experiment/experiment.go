package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/gravsim/internal/sim"
)

type Config struct {
	Sim    sim.Config
	Frames int
	Seed   int64
}

// Result holds the final metric values of a run and their per-frame series.
type Result struct {
	Frames  int64
	Elapsed time.Duration
	Metrics map[string]float64
	Series  map[string][]float64
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
	series    *seriesRecorder
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(metrics []sim.Metric) error {
	if err := e.cfg.Sim.Validate(); err != nil {
		return fmt.Errorf("experiment: %w", err)
	}
	if e.cfg.Frames < 0 {
		return fmt.Errorf("experiment: negative frame count %d", e.cfg.Frames)
	}

	e.simulator = sim.New(e.cfg.Sim, e.cfg.Seed)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	e.series = newSeriesRecorder(metrics, e.cfg.Frames)
	e.simulator.AddObserver(e.series)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	err := e.simulator.Run(ctx, e.cfg.Sim, e.cfg.Frames)
	res := &Result{
		Frames:  e.simulator.FrameIndex(),
		Elapsed: time.Since(start),
		Metrics: make(map[string]float64, len(e.series.metrics)),
		Series:  e.series.values,
	}
	for _, m := range e.series.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, err
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// seriesRecorder samples every metric after each frame. The simulator feeds
// metrics before observers, so the sampled values include the frame.
type seriesRecorder struct {
	metrics []sim.Metric
	values  map[string][]float64
}

func newSeriesRecorder(metrics []sim.Metric, frames int) *seriesRecorder {
	r := &seriesRecorder{
		metrics: metrics,
		values:  make(map[string][]float64, len(metrics)),
	}
	for _, m := range metrics {
		r.values[m.Name()] = make([]float64, 0, frames)
	}
	return r
}

func (r *seriesRecorder) OnFrame(f sim.Frame) {
	for _, m := range r.metrics {
		r.values[m.Name()] = append(r.values[m.Name()], m.Value())
	}
}
