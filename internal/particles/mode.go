package particles

import (
	"fmt"
	"strings"
)

// Mode selects the population strategy of a pool.
type Mode int

const (
	Static Mode = iota
	Emitted
)

func (m Mode) String() string {
	switch m {
	case Static:
		return "static"
	case Emitted:
		return "emitted"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to its Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "static":
		return Static, nil
	case "emitted", "emitter", "trail":
		return Emitted, nil
	}
	return Static, fmt.Errorf("unknown particle mode: %q", s)
}
