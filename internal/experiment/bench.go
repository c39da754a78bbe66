package experiment

import (
	"context"
	"time"

	"github.com/san-kum/gravsim/internal/sim"
)

type BenchCase struct {
	Name string
	Sim  sim.Config
}

type BenchResult struct {
	Name      string
	Particles int
	Sources   int
	Frames    int
	Elapsed   time.Duration
}

// FPS returns frames per second, or zero for an empty run.
func (b BenchResult) FPS() float64 {
	if b.Elapsed <= 0 {
		return 0
	}
	return float64(b.Frames) / b.Elapsed.Seconds()
}

// Bench runs each case on its own simulator, one after another, for the given
// number of frames. It stops at the first cancelled run and returns the
// results gathered so far.
func Bench(ctx context.Context, cases []BenchCase, frames int, seed int64) ([]BenchResult, error) {
	results := make([]BenchResult, 0, len(cases))
	for _, c := range cases {
		s := sim.New(c.Sim, seed)

		start := time.Now()
		err := s.Run(ctx, c.Sim, frames)
		elapsed := time.Since(start)

		results = append(results, BenchResult{
			Name:      c.Name,
			Particles: s.Len(),
			Sources:   len(s.Frame().Sources),
			Frames:    int(s.FrameIndex()),
			Elapsed:   elapsed,
		})
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
