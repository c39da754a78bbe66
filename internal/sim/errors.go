package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/particles"
)

// Config errors. The physics itself never fails; these only guard values
// coming from files and flags.
var (
	// ErrInvalidCount indicates a negative particle or source count.
	ErrInvalidCount = errors.New("sim: count must not be negative")

	// ErrInvalidTTL indicates an emission ttl below one frame or too large to
	// count down in a slot.
	ErrInvalidTTL = errors.New("sim: ttl must be between one frame and MaxInt32")

	// ErrInvalidBox indicates a non-positive box scale or extent.
	ErrInvalidBox = errors.New("sim: box dimensions must be positive")

	// ErrUnknownMode indicates an unsupported pool mode.
	ErrUnknownMode = errors.New("sim: unknown particle mode")

	// ErrUnknownPreset indicates a preset name with no registered scene.
	ErrUnknownPreset = errors.New("sim: unknown preset")
)

// Validate reports the first unusable value in c.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("particles %d: %w", c.Count, ErrInvalidCount)
	}
	if c.Sources < 0 {
		return fmt.Errorf("sources %d: %w", c.Sources, ErrInvalidCount)
	}
	if c.Mode != particles.Static && c.Mode != particles.Emitted {
		return fmt.Errorf("%v: %w", c.Mode, ErrUnknownMode)
	}
	if c.Mode == particles.Emitted && c.TTL < 1 {
		return fmt.Errorf("ttl %d: %w", c.TTL, ErrInvalidTTL)
	}
	if c.TTL > math.MaxInt32 {
		return fmt.Errorf("ttl %d: %w", c.TTL, ErrInvalidTTL)
	}
	if c.BoxScale <= 0 {
		return fmt.Errorf("box scale %g: %w", c.BoxScale, ErrInvalidBox)
	}
	for a, h := range c.HalfExtents {
		if h <= 0 {
			return fmt.Errorf("half extent %d = %g: %w", a, h, ErrInvalidBox)
		}
	}
	return nil
}
