package viz

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/sim"
)

type Edge struct {
	Start, End mgl64.Vec3
	Color      colorful.Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e mgl64.Vec3, c colorful.Color) {
	w.Edges = append(w.Edges, Edge{s, e, c})
}

func (w *Wireframe) Clear() { w.Edges = w.Edges[:0] }

// BoxWireframe returns the twelve edges of the box with the given half
// extents.
func BoxWireframe(half mgl64.Vec3, col colorful.Color) *Wireframe {
	w := NewWireframe()
	x, y, z := half[0], half[1], half[2]
	v := []mgl64.Vec3{{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, {-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], col)
	}
	return w
}

// AxesWireframe returns the three positive axes, red, green and blue.
func AxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), mgl64.Vec3{}
	w.AddEdge(o, mgl64.Vec3{l, 0, 0}, colorful.Color{R: 1})
	w.AddEdge(o, mgl64.Vec3{0, l, 0}, colorful.Color{G: 1})
	w.AddEdge(o, mgl64.Vec3{0, 0, l}, colorful.Color{B: 1})
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          colorful.Color
}

// RenderWireframe draws the edges far to near.
func RenderWireframe(c *Canvas, w *Wireframe, p Projector) {
	if c == nil || w == nil {
		return
	}
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, x2, y2, depth, ok := p.ProjectSegment(e.Start, e.End)
		if ok {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, depth, e.Color})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
	}
}

// Scene draws simulation frames onto a canvas.
type Scene struct {
	Theme Theme
	// MaxPoints caps how many particles are projected per frame; zero draws
	// all of them.
	MaxPoints int
}

// Draw clears c and renders the box, axes, particles and sources of f.
func (s Scene) Draw(c *Canvas, f sim.Frame, cam *Camera) {
	c.Clear()
	w, h := c.Dots()
	p := cam.Projector(w, h)

	RenderWireframe(c, BoxWireframe(f.HalfExtents, s.Theme.Box), p)
	RenderWireframe(c, AxesWireframe(f.HalfExtents[0]), p)

	stride := 1
	if s.MaxPoints > 0 && f.Len() > s.MaxPoints {
		stride = (f.Len() + s.MaxPoints - 1) / s.MaxPoints
	}
	for i := 0; i < f.Len(); i += stride {
		if !f.Live(i) {
			continue
		}
		x, y, _, ok := p.Project(f.Positions[i])
		if !ok {
			continue
		}
		col := f.Colors[i]
		c.SetColor(x, y, colorful.Color{R: col[0], G: col[1], B: col[2]})
	}

	for _, src := range f.Sources {
		x, y, _, ok := p.Project(src.Position)
		if !ok {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				c.SetColor(x+dx, y+dy, s.Theme.Source)
			}
		}
	}
}

// Snapshot renders f once from the default camera into a new w by h canvas.
func Snapshot(f sim.Frame, boxScale float64, theme Theme, w, h int) *Canvas {
	c := NewCanvas(w, h)
	Scene{Theme: theme}.Draw(c, f, NewCamera(boxScale, 1))
	return c
}
