package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.SetColor(0, 0, colorful.Color{R: 1})
	c.Set(3, 3)

	svg := CanvasToSVG(c, 10, "#00ff00")
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `fill="#ff0000"`)
	assert.Contains(t, svg, `fill="#00ff00"`)
	assert.Contains(t, svg, `width="40" height="40"`)
}

func TestCanvasToSVGEmpty(t *testing.T) {
	assert.Empty(t, CanvasToSVG(nil, 1, "#fff"))

	svg := CanvasToSVG(viz.NewCanvas(4, 4), 1, "#fff")
	assert.NotContains(t, svg, "<circle")
}

func TestSeriesToSVG(t *testing.T) {
	assert.Empty(t, SeriesToSVG([]float64{1}, 100, 50, "#fff"))

	svg := SeriesToSVG([]float64{0, 1, 0.5}, 100, 50, "#ff00ff")
	assert.Contains(t, svg, `stroke="#ff00ff"`)
	assert.Contains(t, svg, "M0.0,")
	assert.Equal(t, 2, strings.Count(svg, " L"))

	flat := SeriesToSVG([]float64{2, 2}, 10, 10, "#fff")
	assert.NotContains(t, flat, "NaN")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, map[string][]float64{
		"mean_speed":  {0.5, 0.25},
		"containment": {1},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "frame,containment,mean_speed", lines[0])
	assert.Equal(t, "1,1,0.5", lines[1])
	assert.Equal(t, "2,,0.25", lines[2])
}

func TestWriteJSON(t *testing.T) {
	s := sim.DefaultConfig()
	s.Count = 10
	cfg := experiment.Config{Sim: s, Frames: 3, Seed: 9}
	res := &experiment.Result{
		Frames:  3,
		Elapsed: 1500 * time.Microsecond,
		Metrics: map[string]float64{"containment": 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewReport("comet", cfg, res)))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "comet", got.Scene)
	assert.Equal(t, "static", got.Mode)
	assert.Equal(t, 10, got.Particles)
	assert.Equal(t, int64(9), got.Seed)
	assert.InDelta(t, 1.5, got.ElapsedMS, 1e-9)
	assert.Equal(t, 1.0, got.Metrics["containment"])
	assert.NotContains(t, buf.String(), "series")
}
