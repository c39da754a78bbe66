package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot canvas with one blended color per cell.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	colors [][]colorful.Color
	hits   [][]int
	styles map[string]lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		colors: make([][]colorful.Color, h),
		hits:   make([][]int, h),
		styles: make(map[string]lipgloss.Style),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.colors[i] = make([]colorful.Color, w)
		c.hits[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return false
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	return true
}

// SetColor sets a pixel and mixes col into the color of its cell. Every dot
// landing in a cell carries equal weight.
func (c *Canvas) SetColor(x, y int, col colorful.Color) {
	if !c.Set(x, y) {
		return
	}
	row, cell := y/4, x/2
	c.hits[row][cell]++
	n := c.hits[row][cell]
	if n == 1 {
		c.colors[row][cell] = col
		return
	}
	c.colors[row][cell] = c.colors[row][cell].BlendRgb(col, 1/float64(n))
}

// Cell returns the braille rune of a cell and its blended color. The color is
// only meaningful when ok is true.
func (c *Canvas) Cell(row, col int) (r rune, color colorful.Color, ok bool) {
	if row < 0 || col < 0 || row >= c.Height || col >= c.Width {
		return blank, colorful.Color{}, false
	}
	return c.Grid[row][col], c.colors[row][col], c.hits[row][col] > 0
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.hits[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm. The part outside the
// canvas is cut off first.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorful.Color) {
	w, h := c.Dots()
	ax, ay, bx, by, ok := clipSegment(float64(x0), float64(y0), float64(x1), float64(y1), float64(w), float64(h))
	if !ok {
		return
	}
	x0, y0 = int(math.Round(ax)), int(math.Round(ay))
	x1, y1 = int(math.Round(bx)), int(math.Round(by))

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetColor(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plain renders the dots without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if c.hits[i][j] == 0 {
				b.WriteRune(r)
				continue
			}
			b.WriteString(c.style(c.colors[i][j]).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// style returns a cached foreground style. Colors are quantized to 16 levels
// per channel to keep the cache small.
func (c *Canvas) style(col colorful.Color) lipgloss.Style {
	col = col.Clamped()
	q := func(v float64) float64 { return math.Round(v*15) / 15 }
	hex := colorful.Color{R: q(col.R), G: q(col.G), B: q(col.B)}.Hex()
	s, ok := c.styles[hex]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		c.styles[hex] = s
	}
	return s
}

// clipSegment cuts a segment to [0, w-1] x [0, h-1] (Liang-Barsky). ok is
// false when nothing is left.
func clipSegment(x0, y0, x1, y1, w, h float64) (ax, ay, bx, by float64, ok bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	bounds := [4][2]float64{
		{-dx, x0},
		{dx, w - 1 - x0},
		{-dy, y0},
		{dy, h - 1 - y0},
	}
	for _, b := range bounds {
		p, q := b[0], b[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
