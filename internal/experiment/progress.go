package experiment

import (
	"fmt"
	"io"

	"github.com/san-kum/gravsim/internal/sim"
)

// Progress is an observer printing the completed share of a run in steps of
// ten percent.
type Progress struct {
	w     io.Writer
	total int64
	next  int64
}

func NewProgress(w io.Writer, frames int) *Progress {
	return &Progress{w: w, total: int64(frames), next: 10}
}

func (p *Progress) OnFrame(f sim.Frame) {
	if p.total <= 0 {
		return
	}
	pct := f.Index * 100 / p.total
	if pct < p.next {
		return
	}
	fmt.Fprintf(p.w, "\r%3d%%", pct)
	p.next = pct/10*10 + 10
	if f.Index >= p.total {
		fmt.Fprintln(p.w)
	}
}
