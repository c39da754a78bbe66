// Package optim searches scene parameters for the best value of a metric.
package optim

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/sim"
)

// Axis is one tunable and the values to try for it. Values outside the
// tunable's range are clamped the same way the interactive sliders clamp.
type Axis struct {
	Param  string
	Values []float64
}

// ParseAxis reads "name=v1,v2,...".
func ParseAxis(arg string) (Axis, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" || list == "" {
		return Axis{}, fmt.Errorf("invalid axis %q, want name=v1,v2", arg)
	}
	axis := Axis{Param: strings.TrimSpace(name)}
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("invalid value in axis %q: %w", arg, err)
		}
		axis.Values = append(axis.Values, v)
	}
	return axis, nil
}

// Trial is one evaluated grid point. Params holds the values actually applied.
type Trial struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	axes     []Axis
	params   []config.Param
	maximize bool
	registry *experiment.Registry
}

func NewGridSearch(axes []Axis, maximize bool) (*GridSearch, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("grid search: no axes")
	}
	g := &GridSearch{axes: axes, maximize: maximize, registry: experiment.NewRegistry()}
	for _, a := range axes {
		p, ok := config.GetParam(a.Param)
		if !ok {
			return nil, fmt.Errorf("grid search: unknown parameter %q", a.Param)
		}
		if len(a.Values) == 0 {
			return nil, fmt.Errorf("grid search: no values for %q", a.Param)
		}
		g.params = append(g.params, p)
	}
	return g, nil
}

// Size returns the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// Search runs one experiment of the given length per grid point, all with the
// same seed, and returns the best trial plus every trial ordered best first.
// Ties keep grid order.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, frames int, seed int64, metric string) (Trial, []Trial, error) {
	if _, err := g.registry.GetMetric(metric); err != nil {
		return Trial{}, nil, err
	}

	trials := make([]Trial, 0, g.Size())
	err := g.searchRecursive(ctx, 0, base.Clone(), frames, seed, metric, &trials)
	if err != nil {
		return Trial{}, trials, err
	}

	sort.SliceStable(trials, func(i, j int) bool { return g.better(trials[i].Value, trials[j].Value) })
	return trials[0], trials, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	if g.maximize {
		return a > b
	}
	return a < b
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current *config.Config,
	frames int,
	seed int64,
	metric string,
	trials *[]Trial,
) error {
	if depth == len(g.axes) {
		val, err := g.evaluate(ctx, current, frames, seed, metric)
		if err != nil {
			return err
		}
		applied := make(map[string]float64, len(g.params))
		for _, p := range g.params {
			applied[p.Name] = p.Get(current)
		}
		*trials = append(*trials, Trial{Params: applied, Value: val})
		return nil
	}

	p := g.params[depth]
	for _, v := range g.axes[depth].Values {
		next := current.Clone()
		p.Set(next, v)
		if err := g.searchRecursive(ctx, depth+1, next, frames, seed, metric, trials); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, cfg *config.Config, frames int, seed int64, metric string) (float64, error) {
	m, err := g.registry.GetMetric(metric)
	if err != nil {
		return 0, err
	}
	exp := experiment.New(experiment.Config{Sim: cfg.Sim(), Frames: frames, Seed: seed})
	if err := exp.Setup([]sim.Metric{m}); err != nil {
		return 0, err
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}
	return res.Metrics[metric], nil
}
