package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() Model {
	cfg := config.DefaultConfig()
	cfg.Particles.Count = 500
	return NewModel(cfg, "test", 1, 30)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickSteps(t *testing.T) {
	m := testModel()
	now := time.Now()

	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(time.Second/30)))
	assert.Equal(t, int64(2), m.frame.Index)
	assert.Len(t, m.speedHistory, 2)

	m = update(t, m, key(" "))
	assert.False(t, m.running)
	m = update(t, m, TickMsg(now.Add(time.Second/15)))
	assert.Equal(t, int64(2), m.frame.Index)
}

func TestModelTuning(t *testing.T) {
	m := testModel()
	require.Equal(t, "count", m.params[0].Name)

	m = update(t, m, key("up"))
	assert.Equal(t, 5500, m.cfg.Particles.Count)

	m = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, 5500, m.frame.Len())

	m = update(t, m, key("tab"))
	assert.Equal(t, 1, m.selected)

	m = update(t, m, key("m"))
	assert.Equal(t, particles.Emitted, m.cfg.Mode())

	m = update(t, m, key("r"))
	assert.Equal(t, particles.Static, m.cfg.Mode())
	assert.Equal(t, 500, m.cfg.Particles.Count)
	assert.Equal(t, 500, m.sim.Len())
}

func TestModelMouse(t *testing.T) {
	m := testModel()

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0.75, m.camera.Zoom)

	m = update(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, X: 0, Y: 0})
	assert.Equal(t, -1.0, m.camera.Lat)
	assert.Equal(t, -1.0, m.camera.Lon)
}

func TestModelResizeAndView(t *testing.T) {
	m := testModel()
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120-statsWidth-4, m.canvas.Width)
	assert.Equal(t, 39, m.canvas.Height)

	m = update(t, m, TickMsg(time.Now()))
	view := m.View()
	assert.Contains(t, view, "RUNNING")
	assert.Contains(t, view, "Pull Radius")
}

func TestMenuStartsPreset(t *testing.T) {
	var mm tea.Model = newMenu(1, 30)
	mm, _ = mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	mm, _ = mm.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := mm.(menu)
	require.Equal(t, stateSim, got.state)
	assert.Equal(t, "calm", got.liveModel.name)
	assert.Contains(t, mm.View(), "GRAVSIM")
}
