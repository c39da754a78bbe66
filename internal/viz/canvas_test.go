package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(1, 3)
	assert.Equal(t, rune(blank|0x1|0x80), c.Grid[0][0])

	c.Unset(0, 0)
	assert.Equal(t, rune(blank|0x80), c.Grid[0][0])

	assert.False(t, c.Set(-1, 0))
	assert.False(t, c.Set(4, 0))
	assert.False(t, c.Set(0, 4))

	c.Clear()
	assert.Equal(t, "⠀⠀\n", c.Plain())
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	w, h := c.Dots()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)

	c.DrawLine(0, 0, 7, 0, colorful.Color{R: 1})
	for _, r := range c.Grid[0] {
		assert.Equal(t, rune(blank|0x1|0x8), r)
	}
}

func TestCanvasColorBlend(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetColor(0, 0, colorful.Color{R: 1})
	c.SetColor(1, 0, colorful.Color{B: 1})

	col := c.colors[0][0]
	assert.InDelta(t, 0.5, col.R, 1e-9)
	assert.InDelta(t, 0.5, col.B, 1e-9)
	assert.Equal(t, 2, c.hits[0][0])

	out := c.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, string(rune(blank|0x1|0x8)))
}

func TestCanvasCell(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.SetColor(2, 0, colorful.Color{G: 1})

	r, _, ok := c.Cell(0, 0)
	assert.Equal(t, rune(blank|0x1), r)
	assert.False(t, ok)

	r, col, ok := c.Cell(0, 1)
	assert.Equal(t, rune(blank|0x1), r)
	assert.True(t, ok)
	assert.Equal(t, 1.0, col.G)

	_, _, ok = c.Cell(1, 0)
	assert.False(t, ok)
}

func TestCanvasDrawLineClipped(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(-1<<40, 0, 1<<40, 0, colorful.Color{R: 1})
	for _, r := range c.Grid[0] {
		assert.Equal(t, rune(blank|0x1|0x8), r)
	}

	c.Clear()
	c.DrawLine(-50, -50, -10, -1, colorful.Color{R: 1})
	assert.Equal(t, "⠀⠀⠀⠀\n", c.Plain())
}

func TestClipSegment(t *testing.T) {
	ax, ay, bx, by, ok := clipSegment(-10, 2, 20, 2, 8, 4)
	assert.True(t, ok)
	assert.InDelta(t, 0, ax, 1e-9)
	assert.InDelta(t, 2, ay, 1e-9)
	assert.InDelta(t, 7, bx, 1e-9)
	assert.InDelta(t, 2, by, 1e-9)

	_, _, _, _, ok = clipSegment(-10, 5, 20, 5, 8, 4)
	assert.False(t, ok)

	_, _, _, _, ok = clipSegment(math.Inf(1), 0, 1, 1, 8, 4)
	assert.False(t, ok)
}
