package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravsim/internal/config"
)

var presetInfo = map[string]string{
	"comet":       "one comet, velocity colored",
	"black-holes": "five drifting sources",
	"trail":       "emitted comet tail",
	"dense":       "300k particles",
	"calm":        "heavy drag, gentle pull",
}

const (
	stateMenu = iota
	stateSim
)

// menu picks a preset and then hands over to the live view.
type menu struct {
	state, cursor int
	presets       []string
	seed          int64
	fps           int
	width, height int
	liveModel     Model
}

func newMenu(seed int64, fps int) menu {
	return menu{
		state:   stateMenu,
		presets: config.ListPresets(),
		seed:    seed,
		fps:     fps,
		width:   width + statsWidth,
		height:  height,
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.liveModel.Update(msg)
		m.liveModel = next.(Model)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.menuKey(msg)
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	name := m.presets[m.cursor]
	cfg, err := config.GetPreset(name)
	if err != nil {
		return m, nil
	}
	m.liveModel = NewModel(cfg, name, m.seed, m.fps)
	m.state = stateSim

	// replay the size so the canvas fits the terminal
	next, _ := m.liveModel.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.liveModel = next.(Model)
	return m, m.liveModel.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}

	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)

	b.WriteString("\n\n    " + h.Render("GRAVSIM") + "\n    " + sub.Render("particle gravity playground") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-12s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-12s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" start  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunMenu shows the preset picker and runs the chosen scene.
func RunMenu(seed int64, fps int, logPath string) error {
	return run(newMenu(seed, fps), logPath)
}
